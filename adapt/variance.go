package adapt

// varShrinkTarget is the small diagonal the regularized variance is
// shrunk toward, preventing a singular mass matrix from short windows.
const varShrinkTarget = 1e-3

// Welford accumulates running per-coordinate mean and variance of
// unconstrained draws using Welford's update, which stays stable over
// long windows.
type Welford struct {
	n    int
	mean []float64
	m2   []float64
}

// NewWelford returns an accumulator for dim coordinates.
func NewWelford(dim int) *Welford {
	return &Welford{
		mean: make([]float64, dim),
		m2:   make([]float64, dim),
	}
}

// Update folds one draw into the accumulator.
func (w *Welford) Update(x []float64) {
	w.n++
	n := float64(w.n)
	for i, xi := range x {
		d := xi - w.mean[i]
		w.mean[i] += d / n
		w.m2[i] += d * (xi - w.mean[i])
	}
}

// Count returns the number of accumulated draws.
func (w *Welford) Count() int { return w.n }

// Reset clears the accumulator for the next window.
func (w *Welford) Reset() {
	w.n = 0
	for i := range w.mean {
		w.mean[i] = 0
		w.m2[i] = 0
	}
}

// Variance writes the plain sample variance into dst. With fewer than
// two draws it writes the unit metric.
func (w *Welford) Variance(dst []float64) {
	if w.n < 2 {
		for i := range dst {
			dst[i] = 1
		}

		return
	}
	n := float64(w.n)
	for i := range dst {
		dst[i] = w.m2[i] / (n - 1)
	}
}

// RegularizedVariance writes a shrunk variance estimate suitable as the
// inverse diagonal mass matrix: n/(n+5)·var + 5/(n+5)·1e-3.
func (w *Welford) RegularizedVariance(dst []float64) {
	if w.n < 2 {
		for i := range dst {
			dst[i] = 1
		}

		return
	}
	n := float64(w.n)
	shrink := 5 / (n + 5)
	for i := range dst {
		v := w.m2[i] / (n - 1)
		dst[i] = (1-shrink)*v + shrink*varShrinkTarget
	}
}
