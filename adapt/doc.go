// Package adapt holds the warm-up controllers of the sampler engine:
// dual-averaging step-size adaptation, running variance estimation for
// the diagonal mass matrix, and the window schedule that decides when
// the mass matrix is re-estimated.
//
// Pieces:
//
//   - DualAveraging — Nesterov dual averaging of log step size toward a
//     target acceptance statistic (Hoffman & Gelman constants: γ=0.05,
//     t₀=10, κ=0.75). Restarted whenever the mass matrix changes, since
//     a new metric invalidates the averaged iterates.
//
//   - Welford — numerically stable running mean/variance of the
//     unconstrained draws, one accumulator per coordinate.
//     RegularizedVariance shrinks the estimate toward the unit metric,
//     n/(n+5)·var + 5/(n+5)·1e-3, so short windows cannot produce a
//     degenerate mass matrix.
//
//   - Schedule — splits warm-up into an initial step-size-only buffer,
//     a series of doubling variance-estimation windows, and a terminal
//     step-size-only buffer (75 / 25·2ᵏ / 50 by default). Warm-ups too
//     short for all three phases degrade to step-size-only adaptation.
//
// All state is per-chain and unsynchronized: chains own their
// controllers exclusively.
package adapt
