package sampler_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/lvbayes/changepoint"
	"github.com/katalvlaran/lvbayes/hmc"
	"github.com/katalvlaran/lvbayes/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleIndividual builds the five-dose synthetic set generated from a
// broken stick with intercept 10, slope −5 and breakpoint 1, plus small
// fixed perturbations standing in for measurement noise.
func singleIndividual(t *testing.T) *changepoint.Model {
	t.Helper()
	doses := []float64{0.2, 0.6, 1.0, 1.4, 1.8}
	noise := []float64{0.05, -0.03, 0.02, -0.04, 0.01}
	obs := make([]changepoint.Observation, len(doses))
	for i, d := range doses {
		obs[i] = changepoint.Observation{
			Individual: 1,
			Dose:       d,
			Outcome:    changepoint.BrokenStick(d, 10, -5, 1) + noise[i],
		}
	}

	m, err := changepoint.New(obs, changepoint.Bounds{Lower: 0.5, Upper: 2.0})
	require.NoError(t, err)

	return m
}

// TestRun_RecoversBreakpoint fits the synthetic single-individual set
// and checks the population breakpoint posterior centers near the
// generating value, with every draw respecting the configured support.
func TestRun_RecoversBreakpoint(t *testing.T) {
	m := singleIndividual(t)

	opts := sampler.DefaultOptions()
	opts.Chains = 2
	opts.Warmup = 500
	opts.Iterations = 500
	opts.Seed = 42
	opts.KeepIndividuals = []int{1}

	res, err := sampler.Run(context.Background(), m, opts)
	require.NoError(t, err)
	require.Len(t, res.Draws, 2)

	all := res.AllDraws()
	require.Len(t, all, 1000)

	mean := 0.0
	for _, d := range all {
		mean += d.Breakpoint

		// Support and positivity hold on every draw, not just on average.
		assert.Greater(t, d.Breakpoint, 0.5)
		assert.Less(t, d.Breakpoint, 2.0)
		assert.Greater(t, d.YSD, 0.0)
		for k := 0; k < 3; k++ {
			assert.Greater(t, d.USD[k], 0.0)
		}
		require.Equal(t, []int{1}, d.Individuals)
		require.Len(t, d.Alpha, 1)
	}
	mean /= float64(len(all))
	assert.InDelta(t, 1.0, mean, 0.2, "breakpoint posterior mean must recover the generating value")

	require.Len(t, res.Params, 7)
	assert.Equal(t, "betakp", res.Params[2].Name)
	assert.InDelta(t, mean, res.Params[2].Mean, 1e-9, "summary mean must match the draws")
	for _, cs := range res.ChainStats {
		assert.Equal(t, 500, cs.Draws)
		assert.Greater(t, cs.StepSize, 0.0)
	}
}

// TestRun_IdenticalIndividualsShrink fits two individuals with
// identical observations; the deviation scales should concentrate near
// zero relative to their prior scale.
func TestRun_IdenticalIndividualsShrink(t *testing.T) {
	doses := []float64{0.2, 0.6, 1.0, 1.4, 1.8}
	noise := []float64{0.05, -0.03, 0.02, -0.04, 0.01}
	var obs []changepoint.Observation
	for id := 1; id <= 2; id++ {
		for i, d := range doses {
			obs = append(obs, changepoint.Observation{
				Individual: id,
				Dose:       d,
				Outcome:    changepoint.BrokenStick(d, 10, -5, 1) + noise[i],
			})
		}
	}
	m, err := changepoint.New(obs, changepoint.Bounds{Lower: 0.5, Upper: 2.0})
	require.NoError(t, err)

	opts := sampler.DefaultOptions()
	opts.Chains = 2
	opts.Warmup = 500
	opts.Iterations = 500
	opts.Seed = 11

	res, err := sampler.Run(context.Background(), m, opts)
	require.NoError(t, err)

	for k := 3; k <= 5; k++ { // u_sd[1..3]
		assert.Less(t, res.Params[k].Mean, 3.0,
			"identical individuals leave no room for %s (prior scale 20)", res.Params[k].Name)
	}
}

// TestRun_DivergencesDoNotCrash drives chains with an absurdly large
// fixed step so divergences are guaranteed, and checks the run still
// yields the full draw count with the pathology surfaced as counters.
func TestRun_DivergencesDoNotCrash(t *testing.T) {
	m := singleIndividual(t)

	opts := sampler.DefaultOptions()
	opts.Chains = 2
	opts.Warmup = 0
	opts.Iterations = 200
	opts.StepSize = 25
	opts.Seed = 3

	res, err := sampler.Run(context.Background(), m, opts)
	require.NoError(t, err)

	total := 0
	divergences := 0
	for _, cs := range res.ChainStats {
		total += cs.Draws
		divergences += cs.Divergences
	}
	assert.Equal(t, 400, total, "every transition must still produce a draw")
	assert.Positive(t, divergences, "a 25-unit step cannot integrate this posterior")
	for _, d := range res.AllDraws() {
		assert.False(t, math.IsNaN(d.Breakpoint))
	}
}

// TestRun_DeterministicBySeed verifies two runs with one seed agree
// draw for draw.
func TestRun_DeterministicBySeed(t *testing.T) {
	m := singleIndividual(t)

	opts := sampler.DefaultOptions()
	opts.Chains = 2
	opts.Warmup = 50
	opts.Iterations = 25
	opts.Seed = 99

	a, err := sampler.Run(context.Background(), m, opts)
	require.NoError(t, err)
	b, err := sampler.Run(context.Background(), m, opts)
	require.NoError(t, err)

	assert.Equal(t, a.Draws, b.Draws)
	assert.Equal(t, a.ChainStats, b.ChainStats)
}

// TestRun_Validation covers the configuration sentinels, including
// wrapped chain-level ones.
func TestRun_Validation(t *testing.T) {
	m := singleIndividual(t)
	ctx := context.Background()

	_, err := sampler.Run(ctx, nil, sampler.DefaultOptions())
	assert.ErrorIs(t, err, sampler.ErrNilModel)

	bad := sampler.DefaultOptions()
	bad.Chains = 0
	_, err = sampler.Run(ctx, m, bad)
	assert.ErrorIs(t, err, sampler.ErrBadChains)

	bad = sampler.DefaultOptions()
	bad.KeepIndividuals = []int{2}
	_, err = sampler.Run(ctx, m, bad)
	assert.ErrorIs(t, err, sampler.ErrBadKeep)

	bad = sampler.DefaultOptions()
	bad.Iterations = 0
	_, err = sampler.Run(ctx, m, bad)
	assert.ErrorIs(t, err, hmc.ErrBadIterations, "chain configuration errors pass through wrapped")
}

// TestRun_Cancellation verifies a cancelled context abandons the run.
func TestRun_Cancellation(t *testing.T) {
	m := singleIndividual(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sampler.Run(ctx, m, sampler.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
