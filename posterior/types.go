package posterior

import "errors"

// Sentinel errors of the reporting layer.
var (
	// ErrNoDraws indicates an empty posterior draw set.
	ErrNoDraws = errors.New("posterior: draw set is empty")

	// ErrEmptyGrid indicates an empty prediction grid.
	ErrEmptyGrid = errors.New("posterior: prediction grid is empty")

	// ErrUnknownIndividual indicates a query point referencing an
	// individual whose alpha was not retained in the draws.
	ErrUnknownIndividual = errors.New("posterior: query individual not retained in draws")

	// ErrNoChains indicates diagnostics invoked with no chains.
	ErrNoChains = errors.New("posterior: need at least one chain")

	// ErrShortChain indicates a chain too short to split and
	// autocorrelate.
	ErrShortChain = errors.New("posterior: need at least four draws per chain")
)

// QueryPoint is one (individual, dose) location of the prediction grid.
// The grid may span a finer or wider dose range than the training data.
type QueryPoint struct {
	Individual int
	Dose       float64
}

// Predictive holds posterior-predictive simulations on a grid.
//
// Outcomes[d][p] is the simulated outcome of posterior draw d at grid
// point p; Mean[p] averages the simulated outcomes at point p.
type Predictive struct {
	Points   []QueryPoint
	Outcomes [][]float64
	Mean     []float64
}
