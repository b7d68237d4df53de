package sampler

import (
	"errors"

	"github.com/katalvlaran/lvbayes/changepoint"
	"github.com/katalvlaran/lvbayes/hmc"
)

// DEFAULTS — single source of truth for DefaultOptions.
const (
	// DefaultChains is the number of parallel chains. Four chains is the
	// conventional minimum for a trustworthy split-R̂.
	DefaultChains = 4

	// ConvergenceThreshold is the max-R̂ ceiling below which a run is
	// flagged converged.
	ConvergenceThreshold = 1.1
)

// Sentinel errors returned by Run before any sampling starts.
var (
	// ErrNilModel indicates a nil model.
	ErrNilModel = errors.New("sampler: model must not be nil")

	// ErrBadChains indicates Chains < 1.
	ErrBadChains = errors.New("sampler: Chains must be positive")

	// ErrBadKeep indicates a KeepIndividuals entry outside the model's
	// 1..NumIndividuals ID range.
	ErrBadKeep = errors.New("sampler: KeepIndividuals entry outside the model's individuals")
)

// Options configures a multi-chain run. Iterations, Warmup,
// TargetAccept, MaxTreeDepth and StepSize are forwarded to every chain
// (see hmc.Options); chain c samples from the source seeded Seed + c.
//
// KeepIndividuals selects the individuals whose per-individual effects
// are materialized on every draw; nil retains none (population
// parameters only), which bounds memory on large cohorts.
type Options struct {
	Chains          int
	Iterations      int
	Warmup          int
	TargetAccept    float64
	MaxTreeDepth    int
	StepSize        float64
	Seed            uint64
	KeepIndividuals []int
}

// DefaultOptions returns the documented defaults: DefaultChains chains,
// each with hmc.DefaultOptions.
func DefaultOptions() Options {
	h := hmc.DefaultOptions()

	return Options{
		Chains:       DefaultChains,
		Iterations:   h.Iterations,
		Warmup:       h.Warmup,
		TargetAccept: h.TargetAccept,
		MaxTreeDepth: h.MaxTreeDepth,
	}
}

// ChainStats summarizes one finished chain.
type ChainStats struct {
	Divergences   int
	AcceptRate    float64
	StepSize      float64
	DepthExceeded int
	Draws         int
}

// ParamSummary holds the posterior summary and convergence diagnostics
// of one top-level parameter.
//
// RHat and ESS are NaN when the run is too short to diagnose (fewer
// than four draws per chain).
type ParamSummary struct {
	Name string
	Mean float64
	SD   float64
	RHat float64
	ESS  float64
}

// Result is a finished multi-chain fit.
//
// Draws[c] holds chain c's constrained draws in production order; the
// per-chain slices are kept separate so diagnostics stay computable
// downstream. MaxRHat is the worst R̂ across Params.
type Result struct {
	Draws      [][]changepoint.Draw
	ChainStats []ChainStats
	Params     []ParamSummary
	MaxRHat    float64
	Converged  bool
}

// AllDraws flattens the per-chain draws into one slice, chains in
// order. Use it when chain identity no longer matters (prediction,
// plotting).
func (r *Result) AllDraws() []changepoint.Draw {
	n := 0
	for _, c := range r.Draws {
		n += len(c)
	}
	all := make([]changepoint.Draw, 0, n)
	for _, c := range r.Draws {
		all = append(all, c...)
	}

	return all
}
