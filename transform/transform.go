// SPDX-License-Identifier: MIT

package transform

import "math"

// Positive maps an unconstrained t to x = exp(t) > 0 and returns the
// log-Jacobian of the transform, which equals t itself.
func Positive(t float64) (x, logJac float64) {
	return math.Exp(t), t
}

// PositiveInverse maps a positive x back to unconstrained space.
// x must be strictly positive; x ≤ 0 yields -Inf or NaN by math.Log.
func PositiveInverse(x float64) float64 {
	return math.Log(x)
}

// Bounded maps an unconstrained t to x ∈ (lo, hi) via a scaled logistic
// sigmoid and returns the log-Jacobian
//
//	log(hi-lo) + log σ(t) + log(1-σ(t)).
//
// The Jacobian is computed in log space with softplus so large |t| does
// not overflow.
func Bounded(t, lo, hi float64) (x, logJac float64) {
	s := sigmoid(t)
	x = lo + (hi-lo)*s
	logJac = math.Log(hi-lo) - softplus(t) - softplus(-t)

	return x, logJac
}

// BoundedGrad returns dx/dt and the derivative of the Bounded
// log-Jacobian with respect to t.
func BoundedGrad(t, lo, hi float64) (dxdt, dJacdt float64) {
	s := sigmoid(t)

	return (hi - lo) * s * (1 - s), 1 - 2*s
}

// BoundedInverse maps x ∈ (lo, hi) back to unconstrained space via the
// logit of the normalized position.
func BoundedInverse(x, lo, hi float64) float64 {
	return math.Log(x-lo) - math.Log(hi-x)
}

// sigmoid is the numerically stable logistic function 1/(1+e^{-t}).
func sigmoid(t float64) float64 {
	if t >= 0 {
		return 1 / (1 + math.Exp(-t))
	}
	e := math.Exp(t)

	return e / (1 + e)
}

// softplus computes log(1+e^t) without overflow for large t.
func softplus(t float64) float64 {
	if t > 30 {
		return t
	}

	return math.Log1p(math.Exp(t))
}
