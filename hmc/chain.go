package hmc

import (
	"context"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/lvbayes/adapt"
)

// Chain is a single HMC chain. It owns its state, adaptation controllers
// and rand source exclusively; independent chains may run in parallel
// against one shared read-only Target.
type Chain struct {
	target Target
	opts   Options
	dim    int

	rng       *rand.Rand
	stdNormal distuv.Normal

	cur     point
	eps     float64
	invMass []float64

	da       *adapt.DualAveraging
	welford  *adapt.Welford
	schedule adapt.Schedule

	divergences   int
	depthExceeded int
	acceptSum     float64
	acceptN       int

	// per-transition scratch
	stepAcceptSum float64
	stepLeaves    int
	stepDiverged  bool
}

// NewChain validates opts and prepares a chain positioned at a finite
// starting point. Configuration errors are returned before any sampling
// work happens.
func NewChain(t Target, opts Options) (*Chain, error) {
	if err := opts.validate(t); err != nil {
		return nil, err
	}

	c := &Chain{
		target:  t,
		opts:    opts,
		dim:     t.Dim(),
		rng:     rand.New(rand.NewSource(opts.Seed)),
		invMass: make([]float64, t.Dim()),
	}
	c.stdNormal = distuv.Normal{Mu: 0, Sigma: 1, Src: c.rng}
	for i := range c.invMass {
		c.invMass[i] = 1
	}
	c.cur = newPoint(c.dim)

	if err := c.initPosition(); err != nil {
		return nil, err
	}

	return c, nil
}

// initPosition places the chain at opts.Initial, or at a uniform(−2, 2)
// jitter re-drawn until the target evaluates finitely.
func (c *Chain) initPosition() error {
	if c.opts.Initial != nil {
		copy(c.cur.theta, c.opts.Initial)
		lp, ok := c.target.LogDensityGradient(c.cur.theta, c.cur.grad)
		if !ok {
			return ErrInitFailed
		}
		c.cur.logp = lp

		return nil
	}

	for try := 0; try < initRetries; try++ {
		for i := range c.cur.theta {
			c.cur.theta[i] = 4*c.rng.Float64() - 2
		}
		if lp, ok := c.target.LogDensityGradient(c.cur.theta, c.cur.grad); ok {
			c.cur.logp = lp

			return nil
		}
	}

	return ErrInitFailed
}

// Run drives the WARMUP → SAMPLING → DONE state machine and returns the
// post-warm-up unconstrained draws, strictly in production order. The
// context is checked cooperatively between transitions; cancellation
// abandons the run and returns ctx.Err().
func (c *Chain) Run(ctx context.Context) ([][]float64, error) {
	if c.opts.StepSize > 0 {
		c.eps = c.opts.StepSize
	} else {
		c.eps = c.findStepSize()
	}
	c.da = adapt.NewDualAveraging(c.eps, c.opts.TargetAccept)
	c.welford = adapt.NewWelford(c.dim)
	c.schedule = adapt.NewSchedule(c.opts.Warmup)

	draws := make([][]float64, 0, c.opts.Iterations)
	total := c.opts.Warmup + c.opts.Iterations
	for iter := 0; iter < total; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c.transition()

		if iter < c.opts.Warmup {
			c.warmupUpdate(iter)

			continue
		}
		c.acceptSum += c.stepAccept()
		c.acceptN++
		draws = append(draws, append([]float64(nil), c.cur.theta...))
	}

	return draws, nil
}

// warmupUpdate applies step-size and mass-matrix adaptation after a
// warm-up transition.
func (c *Chain) warmupUpdate(iter int) {
	c.eps = c.da.Update(c.stepAccept())

	if c.schedule.InWindow(iter) {
		c.welford.Update(c.cur.theta)
	}
	if c.schedule.CloseWindow(iter) {
		c.welford.RegularizedVariance(c.invMass)
		c.welford.Reset()
		c.da.Restart(c.eps)
	}
	if iter == c.opts.Warmup-1 {
		c.eps = c.da.Averaged()
	}
}

// stepAccept is the mean acceptance statistic of the last transition.
func (c *Chain) stepAccept() float64 {
	if c.stepLeaves == 0 {
		return 0
	}

	return c.stepAcceptSum / float64(c.stepLeaves)
}

// findStepSize runs the classic coarse doubling/halving search: starting
// from 1, scale the step until a single leapfrog step's acceptance
// crosses ½.
func (c *Chain) findStepSize() float64 {
	const limit = 100
	eps := 1.0

	z := c.cur.clone()
	c.sampleMomentum(&z)
	h0 := c.hamiltonian(z)

	probe := func(eps float64) (float64, bool) {
		trial := z.clone()
		if !c.leapfrog(&trial, eps) {
			return math.Inf(-1), false
		}
		h := c.hamiltonian(trial)
		if math.IsNaN(h) {
			return math.Inf(-1), false
		}

		return h0 - h, true
	}

	dh, ok := probe(eps)
	for tries := 0; !ok && tries < limit; tries++ {
		eps /= 2
		dh, ok = probe(eps)
	}
	if !ok {
		return 1e-6 // pathological start: let dual averaging sort it out
	}

	grow := dh > math.Log(0.5)
	for tries := 0; tries < limit; tries++ {
		if grow {
			eps *= 2
		} else {
			eps /= 2
		}
		dh, ok = probe(eps)
		if !ok {
			if grow {
				eps /= 2

				break
			}

			continue
		}
		if grow && dh <= math.Log(0.5) {
			break
		}
		if !grow && dh >= math.Log(0.5) {
			break
		}
	}

	return math.Min(math.Max(eps, 1e-10), 1e3)
}

// Stats snapshots the chain's diagnostics.
func (c *Chain) Stats() Stats {
	s := Stats{
		Divergences:   c.divergences,
		StepSize:      c.eps,
		DepthExceeded: c.depthExceeded,
	}
	if c.acceptN > 0 {
		s.AcceptRate = c.acceptSum / float64(c.acceptN)
	}

	return s
}
