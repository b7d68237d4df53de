// Package changepoint defines the hierarchical broken-stick dose–response
// model: its observation set, its parameter vector, and the
// log-unnormalized-posterior density with an analytic gradient in
// unconstrained space.
//
// 🚀 The model
//
//	For observation j of individual i with dose x and outcome y:
//
//	  mu    = alpha[i,1] + alpha[i,2]·min(x − alpha[i,3], 0)
//	  y     ~ Normal(mu, y_sd)
//
//	alpha[i] = (beta[1]+u[i,1], beta[2]+u[i,2], betakp+u[i,3]) are the
//	per-individual intercept, pre-breakpoint slope and breakpoint. The
//	mean is flat at alpha[i,1] at and above the individual breakpoint and
//	linear below it, continuous at the breakpoint by construction.
//
// Priors:
//
//   - beta[k]  ~ Normal(0, 20)
//   - betakp   ~ Uniform(Bounds.Lower, Bounds.Upper)
//   - u_sd[k]  ~ half-Normal(0, 20)
//   - y_sd     ~ half-Normal(0, 20)
//   - L_u_Corr ~ LKJ-Cholesky(1) (uniform over valid correlation matrices)
//   - u[i]     ~ MVN(0, diag(u_sd)·L·Lᵗ·diag(u_sd))
//
// The deviations use a non-centered parameterization: the unconstrained
// vector stores raw z[i] ~ N(0, I₃) and the model derives
// u[i] = diag(u_sd)·L·z[i], which keeps the sampler geometry benign.
//
// Unconstrained layout (Dim() = 10 + 3·Npat):
//
//	[ beta1, beta2, kpRaw, log u_sd1..3, log y_sd, corrRaw1..3, z... ]
//
// kpRaw is the scaled-logit coordinate of betakp and corrRaw the tanh
// stick-breaking coordinates of L_u_Corr (see package transform).
//
// Contract:
//
//   - New validates the observation set and breakpoint bounds and returns
//     sentinel configuration errors before any sampling can start.
//   - LogDensityGradient never panics on numerical overflow: it reports
//     ok=false so the sampler can treat the proposal as divergent.
//   - Constrain maps an accepted unconstrained draw back to reporting
//     space, including per-individual alphas for a caller-chosen subset.
//
// Errors (sentinel):
//
//   - ErrNoObservations  — empty observation set.
//   - ErrBadBounds       — breakpoint bounds inverted, equal or non-finite.
//   - ErrBadIndividual   — individual IDs not contiguous from 1.
//   - ErrBadDose         — negative or non-finite dose.
//   - ErrBadOutcome      — negative or non-finite outcome.
package changepoint
