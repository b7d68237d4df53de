// Package sampler orchestrates a full multi-chain posterior fit of the
// hierarchical change-point model: chain construction, parallel
// execution, constrained reporting and convergence diagnostics.
//
// Run outline:
//
//  1. Validate the configuration (sentinel errors, before any work).
//  2. Build Options.Chains independent hmc chains against the shared
//     read-only model; chain c is seeded Options.Seed + c, so a full run
//     is reproducible from a single seed.
//  3. Fan the chains out as goroutines under errgroup.WithContext; each
//     chain owns its rand source, adaptation state and draw buffer, so
//     no synchronization happens while sampling. Cancelling the context
//     abandons every chain between transitions.
//  4. After all chains finish, map every unconstrained draw back to
//     constrained space (Model.Constrain with the retained individual
//     subset) and compute split-chain R̂ and effective sample size for
//     each top-level parameter.
//
// Non-convergence (max R̂ above ConvergenceThreshold) is a surfaced
// diagnostic on the Result, never an error: the draws are returned so
// the caller can inspect what went wrong.
//
// Errors (sentinel, all configuration-time): ErrNilModel, ErrBadChains,
// ErrBadKeep; hmc configuration errors pass through wrapped and remain
// errors.Is-matchable.
package sampler
