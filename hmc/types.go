package hmc

import "errors"

// DEFAULTS — single source of truth for DefaultOptions.
const (
	// DefaultIterations is the number of post-warm-up draws per chain.
	DefaultIterations = 1000

	// DefaultWarmup is the number of adaptation transitions preceding
	// the sampling phase.
	DefaultWarmup = 1000

	// DefaultTargetAccept is the dual-averaging target mean acceptance
	// statistic. 0.8 trades speed against divergence robustness; raise
	// it toward 0.99 for stiff posteriors.
	DefaultTargetAccept = 0.8

	// DefaultMaxTreeDepth caps trajectory doubling: at most 2^depth
	// leapfrog steps per transition.
	DefaultMaxTreeDepth = 10

	// maxEnergyError is the Hamiltonian error (nats) beyond which a
	// trajectory is declared divergent, matching the threshold used by
	// mainstream NUTS implementations.
	maxEnergyError = 1000.0

	// initRetries bounds the search for a finite starting point.
	initRetries = 100
)

// Sentinel errors returned by NewChain. All are configuration errors,
// rejected before any sampling starts.
var (
	// ErrNilTarget indicates a nil Target.
	ErrNilTarget = errors.New("hmc: target must not be nil")

	// ErrBadIterations indicates Iterations < 1.
	ErrBadIterations = errors.New("hmc: Iterations must be positive")

	// ErrBadWarmup indicates Warmup < 0.
	ErrBadWarmup = errors.New("hmc: Warmup must be non-negative")

	// ErrBadTargetAccept indicates TargetAccept outside (0, 1).
	ErrBadTargetAccept = errors.New("hmc: TargetAccept must lie in (0, 1)")

	// ErrBadTreeDepth indicates MaxTreeDepth < 1.
	ErrBadTreeDepth = errors.New("hmc: MaxTreeDepth must be positive")

	// ErrBadStepSize indicates a negative or non-finite StepSize.
	ErrBadStepSize = errors.New("hmc: StepSize must be positive when set")

	// ErrBadInitial indicates an Initial vector of the wrong length.
	ErrBadInitial = errors.New("hmc: Initial must have length Target.Dim()")

	// ErrInitFailed indicates no finite starting point was found.
	ErrInitFailed = errors.New("hmc: failed to find a finite starting point")
)

// Target is the log-density a chain samples from. Implementations must
// be safe for concurrent read-only use by parallel chains.
//
// LogDensityGradient evaluates the log-unnormalized density at theta and
// writes its gradient into grad (both of length Dim). ok=false reports a
// numerically degenerate point; the chain treats the proposal as
// divergent rather than failing.
type Target interface {
	Dim() int
	LogDensityGradient(theta, grad []float64) (lp float64, ok bool)
}

// Options configures a single chain.
//
//   - Iterations   — post-warm-up draws to produce.
//   - Warmup       — adaptation transitions (discarded).
//   - TargetAccept — dual-averaging target acceptance statistic.
//   - MaxTreeDepth — trajectory doubling cap.
//   - StepSize     — fixed initial step size; 0 requests the automatic
//     coarse search before warm-up.
//   - Seed         — seed of the chain's private rand source.
//   - Initial      — optional starting point in unconstrained space; nil
//     requests a uniform(−2, 2) jitter, re-drawn until finite.
type Options struct {
	Iterations   int
	Warmup       int
	TargetAccept float64
	MaxTreeDepth int
	StepSize     float64
	Seed         uint64
	Initial      []float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Iterations:   DefaultIterations,
		Warmup:       DefaultWarmup,
		TargetAccept: DefaultTargetAccept,
		MaxTreeDepth: DefaultMaxTreeDepth,
	}
}

// validate enforces the option invariants against a target.
func (o Options) validate(t Target) error {
	if t == nil {
		return ErrNilTarget
	}
	if o.Iterations < 1 {
		return ErrBadIterations
	}
	if o.Warmup < 0 {
		return ErrBadWarmup
	}
	if o.TargetAccept <= 0 || o.TargetAccept >= 1 {
		return ErrBadTargetAccept
	}
	if o.MaxTreeDepth < 1 {
		return ErrBadTreeDepth
	}
	if o.StepSize < 0 || o.StepSize != o.StepSize {
		return ErrBadStepSize
	}
	if o.Initial != nil && len(o.Initial) != t.Dim() {
		return ErrBadInitial
	}

	return nil
}

// Stats summarizes a finished (or running) chain.
type Stats struct {
	// Divergences counts transitions flagged divergent, across warm-up
	// and sampling.
	Divergences int

	// AcceptRate is the mean acceptance statistic over the sampling
	// phase.
	AcceptRate float64

	// StepSize is the step size in effect when Stats was taken (the
	// frozen dual-averaged value after warm-up).
	StepSize float64

	// DepthExceeded counts transitions that hit MaxTreeDepth.
	DepthExceeded int
}
