package adapt

import "math"

// Dual-averaging constants from Hoffman & Gelman (2014), as used by
// every mainstream NUTS implementation.
const (
	daGamma = 0.05
	daT0    = 10.0
	daKappa = 0.75
)

// DualAveraging adapts the leapfrog step size toward a target mean
// acceptance statistic. Not safe for concurrent use; each chain owns
// its own instance.
type DualAveraging struct {
	target float64

	mu        float64
	logEps    float64
	logEpsBar float64
	hBar      float64
	count     int
}

// NewDualAveraging starts adaptation at eps0 with the given target
// acceptance statistic.
func NewDualAveraging(eps0, target float64) *DualAveraging {
	d := &DualAveraging{target: target}
	d.Restart(eps0)

	return d
}

// Restart re-anchors the controller at eps0, discarding accumulated
// statistics. Called after every mass-matrix update.
func (d *DualAveraging) Restart(eps0 float64) {
	d.mu = math.Log(10 * eps0)
	d.logEps = math.Log(eps0)
	d.logEpsBar = math.Log(eps0)
	d.hBar = 0
	d.count = 0
}

// Update folds one transition's mean acceptance statistic into the
// controller and returns the step size for the next transition.
func (d *DualAveraging) Update(accept float64) float64 {
	d.count++
	n := float64(d.count)

	w := 1 / (n + daT0)
	d.hBar = (1-w)*d.hBar + w*(d.target-accept)
	d.logEps = d.mu - math.Sqrt(n)/daGamma*d.hBar

	eta := math.Pow(n, -daKappa)
	d.logEpsBar = eta*d.logEps + (1-eta)*d.logEpsBar

	return math.Exp(d.logEps)
}

// Averaged returns the dual-averaged step size, the value a chain
// freezes when warm-up ends.
func (d *DualAveraging) Averaged() float64 {
	return math.Exp(d.logEpsBar)
}
