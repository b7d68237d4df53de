// Package lvbayes is an in-memory toolkit for hierarchical Bayesian
// change-point inference on repeated-measures dose–response data.
//
// 🚀 What is lvbayes?
//
//	A pure-Go library that fits a piecewise-linear ("broken-stick")
//	mixed-effects model with a random per-individual breakpoint, using
//	Hamiltonian Monte Carlo with no-U-turn trajectories:
//		• changepoint — model definition: log-posterior + analytic gradient
//		• transform   — constrained↔unconstrained bijections with Jacobians
//		• hmc         — leapfrog integration, NUTS trees, divergence handling
//		• adapt       — dual-averaging step size & mass-matrix warm-up
//		• posterior   — predictive simulation, covariance reconstruction, R̂/ESS
//		• sampler     — parallel multi-chain orchestration & diagnostics
//
// ✨ Why choose lvbayes?
//
//   - Library-first – in-memory inputs, in-memory outputs, no I/O
//   - Deterministic – explicit per-chain random sources, no global state
//   - Honest numerics – divergences are counted, never swallowed
//   - Built on gonum for matrix algebra, distributions and statistics
//
// A fit is three calls:
//
//	m, err := changepoint.New(obs, changepoint.Bounds{Lower: 0.5, Upper: 2.0})
//	res, err := sampler.Run(ctx, m, sampler.DefaultOptions())
//	pred, err := posterior.Predict(res.AllDraws(), grid, src)
//
// Dive into each package's doc.go for the algorithm outlines and the full
// error contracts.
package lvbayes
