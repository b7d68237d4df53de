package changepoint

import "errors"

// PriorScale is the common scale of the weakly-informative Normal and
// half-Normal priors on beta, u_sd and y_sd.
const PriorScale = 20.0

// nEffects is the number of correlated per-individual deviations
// (intercept, slope, breakpoint).
const nEffects = 3

// Offsets of the shared parameters inside the unconstrained vector.
// Per-individual raw deviations follow the fixed block.
const (
	idxBeta0 = 0
	idxBeta1 = 1
	idxKp    = 2
	idxUSD   = 3 // three entries
	idxYSD   = 6
	idxCorr  = 7 // three entries
	fixedDim = 10
)

// Sentinel errors returned by New. All are configuration errors: fatal
// for the run, reported before any sampling starts.
var (
	// ErrNoObservations indicates an empty observation set.
	ErrNoObservations = errors.New("changepoint: observation set is empty")

	// ErrBadBounds indicates breakpoint bounds with Lower >= Upper or a
	// non-finite endpoint.
	ErrBadBounds = errors.New("changepoint: breakpoint bounds must be finite with Lower < Upper")

	// ErrBadIndividual indicates individual IDs that are not a contiguous
	// 1..Npat labeling (renumbering is an upstream responsibility).
	ErrBadIndividual = errors.New("changepoint: individual IDs must be contiguous starting at 1")

	// ErrBadDose indicates a negative or non-finite dose.
	ErrBadDose = errors.New("changepoint: dose must be non-negative and finite")

	// ErrBadOutcome indicates a negative or non-finite outcome.
	ErrBadOutcome = errors.New("changepoint: outcome must be non-negative and finite")
)

// Observation is a single (individual, dose, outcome) triple.
// Individual IDs are 1-based and must be contiguous across the set.
type Observation struct {
	Individual int
	Dose       float64
	Outcome    float64
}

// Bounds is the caller-supplied support of the population breakpoint.
type Bounds struct {
	Lower float64
	Upper float64
}

// Draw is one accepted posterior draw mapped back to constrained space.
// Draws are immutable once produced; CorrChol is the lower-triangular
// Cholesky factor of the deviation correlation matrix.
//
// Individuals lists the IDs whose per-individual effects were retained
// (a caller-chosen subset, to bound memory); Alpha[k] holds the
// (intercept, slope, breakpoint) triple for Individuals[k].
type Draw struct {
	Beta       [2]float64
	Breakpoint float64
	USD        [3]float64
	YSD        float64
	CorrChol   [3][3]float64

	Individuals []int
	Alpha       [][3]float64
}
