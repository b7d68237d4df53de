package adapt_test

import (
	"testing"

	"github.com/katalvlaran/lvbayes/adapt"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

// TestDualAveraging_Direction verifies the controller moves the step
// size the right way: persistent over-acceptance grows it, persistent
// rejection shrinks it.
func TestDualAveraging_Direction(t *testing.T) {
	grow := adapt.NewDualAveraging(0.1, 0.8)
	var eps float64
	for i := 0; i < 50; i++ {
		eps = grow.Update(1.0) // always accepted → step too timid
	}
	assert.Greater(t, eps, 0.1, "full acceptance must grow the step size")

	shrink := adapt.NewDualAveraging(0.1, 0.8)
	for i := 0; i < 50; i++ {
		eps = shrink.Update(0.0) // always rejected → step too bold
	}
	assert.Less(t, eps, 0.1, "full rejection must shrink the step size")
}

// TestDualAveraging_FixedPoint verifies that with zero adaptation error
// the controller settles at its anchor μ = log(10·eps0) — the classic
// dual-averaging shrinkage point.
func TestDualAveraging_FixedPoint(t *testing.T) {
	d := adapt.NewDualAveraging(0.25, 0.8)
	for i := 0; i < 200; i++ {
		d.Update(0.8)
	}
	assert.InDelta(t, 2.5, d.Averaged(), 1e-9, "zero error settles at exp(μ) = 10·eps0")
}

// TestDualAveraging_Restart verifies Restart discards history.
func TestDualAveraging_Restart(t *testing.T) {
	d := adapt.NewDualAveraging(0.1, 0.8)
	for i := 0; i < 30; i++ {
		d.Update(0.0)
	}
	d.Restart(0.5)
	assert.InDelta(t, 0.5, d.Averaged(), 1e-12, "restart re-anchors the average")
}

// TestWelford_MatchesDirectVariance verifies the running moments against
// gonum's batch estimators.
func TestWelford_MatchesDirectVariance(t *testing.T) {
	xs := [][]float64{
		{1.0, -2.0}, {2.5, 0.5}, {-0.5, 3.0}, {4.0, -1.0}, {0.0, 0.0},
	}
	w := adapt.NewWelford(2)
	for _, x := range xs {
		w.Update(x)
	}
	assert.Equal(t, len(xs), w.Count())

	got := make([]float64, 2)
	w.Variance(got)
	for dim := 0; dim < 2; dim++ {
		col := make([]float64, len(xs))
		for i, x := range xs {
			col[i] = x[dim]
		}
		assert.InDelta(t, stat.Variance(col, nil), got[dim], 1e-12, "dim %d", dim)
	}
}

// TestWelford_Regularization verifies shrinkage toward the small
// diagonal and the unit fallback for starved windows.
func TestWelford_Regularization(t *testing.T) {
	w := adapt.NewWelford(1)
	dst := make([]float64, 1)

	w.RegularizedVariance(dst)
	assert.Equal(t, 1.0, dst[0], "fewer than two draws falls back to unit metric")

	w.Update([]float64{0})
	w.Update([]float64{10})
	w.RegularizedVariance(dst)
	plain := make([]float64, 1)
	w.Variance(plain)
	assert.Less(t, dst[0], plain[0], "shrinkage must pull a large variance down")
	assert.Greater(t, dst[0], 0.0)
}

// TestSchedule_Layout verifies the three-phase partition for a standard
// warm-up length: windows start after the init buffer, double, and end
// before the terminal buffer.
func TestSchedule_Layout(t *testing.T) {
	s := adapt.NewSchedule(1000)
	assert.Greater(t, s.Windows(), 1)

	assert.False(t, s.InWindow(0), "init buffer is step-size-only")
	assert.False(t, s.InWindow(74))
	assert.True(t, s.InWindow(75), "first window opens after the init buffer")
	assert.True(t, s.InWindow(949))
	assert.False(t, s.InWindow(950), "terminal buffer is step-size-only")

	assert.True(t, s.CloseWindow(99), "base window of 25 closes at iteration 99")
	assert.False(t, s.CloseWindow(100))
	assert.True(t, s.CloseWindow(949), "last window closes right before the terminal buffer")
}

// TestSchedule_ShortWarmup verifies warm-ups too short for all phases
// degrade to step-size-only adaptation.
func TestSchedule_ShortWarmup(t *testing.T) {
	s := adapt.NewSchedule(100)
	assert.Equal(t, 0, s.Windows())
	for iter := 0; iter < 100; iter++ {
		assert.False(t, s.InWindow(iter))
		assert.False(t, s.CloseWindow(iter))
	}
}
