// Package posterior turns accepted draws into reportable quantities:
// reconstructed correlation/covariance matrices, posterior-predictive
// outcomes on a caller-supplied dose grid, and the standard convergence
// diagnostics (split-R̂ and effective sample size).
//
// Derived quantities:
//
//   - Correlation(d) = L·Lᵗ for the draw's correlation Cholesky factor —
//     unit diagonal, symmetric PSD by construction.
//   - Covariance(d)  = diag(u_sd)·L·Lᵗ·diag(u_sd).
//
// Posterior predictive:
//
//	For every posterior draw and every (individual, dose) query point,
//	Predict evaluates the broken-stick mean with that draw's alpha for
//	the individual and simulates one outcome ~ Normal(mu, y_sd) using
//	the caller's rand source. Each predictive outcome is generated
//	independently per posterior draw — no resampling or reuse across
//	draws — so predictive uncertainty reflects the full posterior.
//
// Diagnostics:
//
//   - SplitRHat — potential scale reduction over split half-chains;
//     values near 1.0 indicate between-chain and within-chain variance
//     agree.
//   - ESS — effective sample size via Geyer's initial monotone positive
//     sequence over paired autocorrelations of the split chains.
//
// Errors (sentinel):
//
//   - ErrNoDraws            — empty draw set.
//   - ErrEmptyGrid          — empty prediction grid.
//   - ErrUnknownIndividual  — a query point names an individual whose
//     per-draw alpha was not retained (see sampler.Options.KeepIndividuals).
//   - ErrShortChain         — diagnostics need ≥ 4 draws per chain.
//   - ErrNoChains           — diagnostics need at least one chain.
package posterior
