// Package transform maps constrained model parameters to and from the
// unconstrained space a gradient-based sampler works in, together with
// the log-Jacobian corrections that keep densities consistent.
//
// Three bijections are provided:
//
//   - Positive: x > 0            ↔ t = log(x)
//     log-Jacobian = t (i.e. log x).
//
//   - Bounded:  x ∈ (lo, hi)     ↔ scaled logit
//     x = lo + (hi-lo)·σ(t) with σ the logistic sigmoid;
//     log-Jacobian = log(hi-lo) + log σ(t) + log(1-σ(t)).
//
//   - CorrCholesky3: a 3×3 lower-triangular Cholesky factor of a
//     correlation matrix (unit row norms) ↔ 3 unconstrained reals via
//     tanh stick-breaking (hyperspherical) coordinates:
//
//     z_k = tanh(t_k)
//     L = ⎡ 1                                  ⎤
//     ⎢ z₁      √(1-z₁²)                   ⎥
//     ⎣ z₂      z₃·√(1-z₂²)   √((1-z₂²)(1-z₃²)) ⎦
//
//     log-Jacobian = log(1-z₁²) + 1.5·log(1-z₂²) + log(1-z₃²),
//     i.e. the tanh terms plus the single stick-breaking scaling term
//     0.5·log(1-z₂²) contributed by the L₃₂ entry.
//
// Every forward function returns values only — no allocation, no state —
// so callers can fold the Jacobians straight into a log-density and
// chain-rule helpers (BoundedGrad, CorrChol.ChainGrad) straight into its
// gradient.
//
// Degenerate inputs (|tanh| rounding to 1, overflowing exp) are reported
// by CorrCholesky3's ok=false return; callers treat that as a divergence
// rather than an error.
package transform
