// Package hmc implements a single-chain Hamiltonian Monte Carlo sampler
// with no-U-turn trajectory construction, divergence detection and
// warm-up adaptation of step size and diagonal mass matrix.
//
// Algorithm outline (one transition):
//
//  1. Draw momentum r ~ N(0, M) with M the diagonal mass matrix, and
//     record the starting Hamiltonian H₀ = −logp(θ) + ½·rᵗM⁻¹r.
//  2. Grow a binary-doubling trajectory: at depth d, extend the current
//     path by 2ᵈ leapfrog steps in a random direction (forward or
//     backward in fictitious time).
//  3. Select the next state multinomially: every visited point carries
//     weight exp(H₀ − H); each finished subtree's candidate replaces the
//     running proposal with Metropolis-corrected probability
//     min(1, W_subtree/W_trajectory) — the biased progressive sampling
//     that preserves detailed balance.
//  4. Stop on the no-U-turn criterion (momentum sum turning back toward
//     either trajectory end, measured through M⁻¹), on divergence, or at
//     MaxTreeDepth (recorded as a diagnostic, not an error).
//  5. A divergence is an energy error H − H₀ > 1000 nats or a target
//     evaluation reporting non-finite density/gradient; the offending
//     subtree is discarded, the transition keeps the best candidate so
//     far (possibly a self-transition) and the chain's divergence
//     counter increments.
//
// Warm-up follows the WARMUP → SAMPLING state machine: dual averaging
// nudges the step size toward Options.TargetAccept after every
// transition, and at each variance-window close (package adapt) the
// diagonal mass matrix is re-estimated from the running draw variance
// and dual averaging restarts. The last warm-up transition freezes the
// averaged step size for the sampling phase.
//
// Determinism & concurrency: a Chain owns an explicit rand source seeded
// from Options.Seed; it shares nothing mutable, so independent chains
// may run in parallel against one read-only Target.
//
// Complexity per transition: O(2^depth · dim) leapfrog work, bounded by
// MaxTreeDepth; memory O(depth · dim) for the recursion's endpoints.
//
// Errors (sentinel, all configuration-time):
//
//   - ErrNilTarget, ErrBadIterations, ErrBadWarmup, ErrBadTargetAccept,
//     ErrBadTreeDepth, ErrBadStepSize, ErrBadInitial
//   - ErrInitFailed — no finite starting point could be found.
package hmc
