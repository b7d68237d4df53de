package sampler

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvbayes/changepoint"
	"github.com/katalvlaran/lvbayes/hmc"
	"github.com/katalvlaran/lvbayes/posterior"
)

// summarized names the top-level parameters diagnosed per run, paired
// with their extraction from a constrained draw.
var summarized = []struct {
	name string
	get  func(d changepoint.Draw) float64
}{
	{"beta[1]", func(d changepoint.Draw) float64 { return d.Beta[0] }},
	{"beta[2]", func(d changepoint.Draw) float64 { return d.Beta[1] }},
	{"betakp", func(d changepoint.Draw) float64 { return d.Breakpoint }},
	{"u_sd[1]", func(d changepoint.Draw) float64 { return d.USD[0] }},
	{"u_sd[2]", func(d changepoint.Draw) float64 { return d.USD[1] }},
	{"u_sd[3]", func(d changepoint.Draw) float64 { return d.USD[2] }},
	{"y_sd", func(d changepoint.Draw) float64 { return d.YSD }},
}

// Run fits the model with opts.Chains parallel NUTS chains and returns
// the merged, constrained result. Configuration problems surface as
// sentinel errors before any sampling; numerical trouble during
// sampling is absorbed into per-chain divergence counters; failure to
// converge sets Result.Converged=false but is not an error.
func Run(ctx context.Context, m *changepoint.Model, opts Options) (*Result, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if opts.Chains < 1 {
		return nil, ErrBadChains
	}
	for _, id := range opts.KeepIndividuals {
		if id < 1 || id > m.NumIndividuals() {
			return nil, fmt.Errorf("%w: %d", ErrBadKeep, id)
		}
	}

	// Build every chain up front so configuration errors beat sampling.
	chains := make([]*hmc.Chain, opts.Chains)
	for c := range chains {
		ch, err := hmc.NewChain(m, hmc.Options{
			Iterations:   opts.Iterations,
			Warmup:       opts.Warmup,
			TargetAccept: opts.TargetAccept,
			MaxTreeDepth: opts.MaxTreeDepth,
			StepSize:     opts.StepSize,
			Seed:         opts.Seed + uint64(c),
		})
		if err != nil {
			return nil, fmt.Errorf("sampler: chain %d: %w", c, err)
		}
		chains[c] = ch
	}

	// Fan out. Each chain writes only its own slot; no locking needed.
	raw := make([][][]float64, opts.Chains)
	g, gctx := errgroup.WithContext(ctx)
	for c := range chains {
		c := c
		g.Go(func() error {
			draws, err := chains[c].Run(gctx)
			if err != nil {
				return fmt.Errorf("sampler: chain %d: %w", c, err)
			}
			raw[c] = draws

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Draws:      make([][]changepoint.Draw, opts.Chains),
		ChainStats: make([]ChainStats, opts.Chains),
	}
	for c, thetas := range raw {
		res.Draws[c] = make([]changepoint.Draw, len(thetas))
		for i, theta := range thetas {
			res.Draws[c][i] = m.Constrain(theta, opts.KeepIndividuals)
		}
		st := chains[c].Stats()
		res.ChainStats[c] = ChainStats{
			Divergences:   st.Divergences,
			AcceptRate:    st.AcceptRate,
			StepSize:      st.StepSize,
			DepthExceeded: st.DepthExceeded,
			Draws:         len(thetas),
		}
	}

	res.Params = summarize(res.Draws)
	res.MaxRHat = math.Inf(-1)
	for _, p := range res.Params {
		res.MaxRHat = math.Max(res.MaxRHat, p.RHat)
	}
	res.Converged = res.MaxRHat <= ConvergenceThreshold

	return res, nil
}

// summarize computes mean, SD, split-R̂ and ESS for every summarized
// parameter over the per-chain constrained draws.
func summarize(draws [][]changepoint.Draw) []ParamSummary {
	params := make([]ParamSummary, 0, len(summarized))
	series := make([][]float64, len(draws))
	for _, p := range summarized {
		flat := extract(draws, p.get, series)
		s := ParamSummary{
			Name: p.name,
			Mean: stat.Mean(flat, nil),
			SD:   math.Sqrt(stat.Variance(flat, nil)),
		}
		// Diagnostics need at least four draws per chain; shorter runs
		// report NaN rather than a misleading number.
		if rhat, err := posterior.SplitRHat(series); err == nil {
			s.RHat = rhat
		} else {
			s.RHat = math.NaN()
		}
		if ess, err := posterior.ESS(series); err == nil {
			s.ESS = ess
		} else {
			s.ESS = math.NaN()
		}
		params = append(params, s)
	}

	return params
}

// extract pulls one scalar series per chain into series (reused across
// parameters) and returns the concatenation of all chains.
func extract(draws [][]changepoint.Draw, get func(changepoint.Draw) float64, series [][]float64) []float64 {
	n := 0
	for _, c := range draws {
		n += len(c)
	}
	all := make([]float64, 0, n)
	for ci, c := range draws {
		if cap(series[ci]) < len(c) {
			series[ci] = make([]float64, len(c))
		}
		series[ci] = series[ci][:len(c)]
		for i, d := range c {
			series[ci][i] = get(d)
		}
		all = append(all, series[ci]...)
	}

	return all
}
