package hmc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// point is one phase-space state: position, momentum, cached gradient
// and log-density.
type point struct {
	theta []float64
	r     []float64
	grad  []float64
	logp  float64
}

func newPoint(dim int) point {
	return point{
		theta: make([]float64, dim),
		r:     make([]float64, dim),
		grad:  make([]float64, dim),
	}
}

func (p point) clone() point {
	q := newPoint(len(p.theta))
	q.copyFrom(p)

	return q
}

func (p *point) copyFrom(src point) {
	copy(p.theta, src.theta)
	copy(p.r, src.r)
	copy(p.grad, src.grad)
	p.logp = src.logp
}

// leapfrog advances z by one step of signed size eps under the diagonal
// metric. Returns false when the target reports a degenerate point, in
// which case z is left in an undefined state and the caller must treat
// the step as divergent.
func (c *Chain) leapfrog(z *point, eps float64) bool {
	floats.AddScaled(z.r, 0.5*eps, z.grad)
	for i := range z.theta {
		z.theta[i] += eps * c.invMass[i] * z.r[i]
	}
	lp, ok := c.target.LogDensityGradient(z.theta, z.grad)
	if !ok {
		return false
	}
	z.logp = lp
	floats.AddScaled(z.r, 0.5*eps, z.grad)

	return true
}

// kinetic is ½·rᵗM⁻¹r for the diagonal metric.
func (c *Chain) kinetic(r []float64) float64 {
	k := 0.0
	for i, ri := range r {
		k += c.invMass[i] * ri * ri
	}

	return 0.5 * k
}

// hamiltonian is the total energy −logp + kinetic.
func (c *Chain) hamiltonian(z point) float64 {
	return -z.logp + c.kinetic(z.r)
}

// sampleMomentum fills z.r from N(0, M).
func (c *Chain) sampleMomentum(z *point) {
	for i := range z.r {
		z.r[i] = c.stdNormal.Rand() / math.Sqrt(c.invMass[i])
	}
}
