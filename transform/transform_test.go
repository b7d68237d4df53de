package transform_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvbayes/transform"
	"github.com/stretchr/testify/assert"
)

// TestPositive_RoundTrip verifies exp/log are mutual inverses and that
// the log-Jacobian equals log(x).
func TestPositive_RoundTrip(t *testing.T) {
	for _, u := range []float64{-3, -0.5, 0, 0.5, 3} {
		x, logJac := transform.Positive(u)
		assert.Greater(t, x, 0.0, "Positive must land in (0, +inf)")
		assert.InDelta(t, u, transform.PositiveInverse(x), 1e-12, "round trip")
		assert.InDelta(t, math.Log(x), logJac, 1e-12, "log-Jacobian is log(x)")
	}
}

// TestBounded_StaysInInterval verifies the image is always inside
// (lo, hi), even for extreme unconstrained inputs.
func TestBounded_StaysInInterval(t *testing.T) {
	lo, hi := 0.5, 2.0
	for _, u := range []float64{-50, -2, 0, 2, 50} {
		x, logJac := transform.Bounded(u, lo, hi)
		assert.Greater(t, x, lo, "below lower bound at t=%v", u)
		assert.Less(t, x, hi, "above upper bound at t=%v", u)
		assert.False(t, math.IsNaN(logJac), "log-Jacobian must stay finite-ish")
	}
}

// TestBounded_RoundTrip verifies BoundedInverse recovers the
// unconstrained coordinate.
func TestBounded_RoundTrip(t *testing.T) {
	lo, hi := -1.0, 3.0
	for _, u := range []float64{-4, -1, 0, 0.7, 4} {
		x, _ := transform.Bounded(u, lo, hi)
		assert.InDelta(t, u, transform.BoundedInverse(x, lo, hi), 1e-9)
	}
}

// TestBounded_Jacobian verifies the analytic log-Jacobian against
// log|dx/dt| computed by central differences.
func TestBounded_Jacobian(t *testing.T) {
	lo, hi := 0.5, 2.0
	h := 1e-6
	for _, u := range []float64{-2, -0.3, 0, 0.9, 2.5} {
		xp, _ := transform.Bounded(u+h, lo, hi)
		xm, _ := transform.Bounded(u-h, lo, hi)
		_, logJac := transform.Bounded(u, lo, hi)
		assert.InDelta(t, math.Log((xp-xm)/(2*h)), logJac, 1e-6, "t=%v", u)
	}
}

// TestBoundedGrad_FiniteDifference verifies dx/dt and dLogJac/dt.
func TestBoundedGrad_FiniteDifference(t *testing.T) {
	lo, hi := 0.5, 2.0
	h := 1e-6
	for _, u := range []float64{-1.5, 0, 0.4, 2} {
		dxdt, dJacdt := transform.BoundedGrad(u, lo, hi)

		xp, jp := transform.Bounded(u+h, lo, hi)
		xm, jm := transform.Bounded(u-h, lo, hi)
		assert.InDelta(t, (xp-xm)/(2*h), dxdt, 1e-6, "dx/dt at t=%v", u)
		assert.InDelta(t, (jp-jm)/(2*h), dJacdt, 1e-6, "dJac/dt at t=%v", u)
	}
}
