package changepoint

import (
	"math"

	"github.com/katalvlaran/lvbayes/transform"
)

// Model is an immutable, preprocessed observation set plus breakpoint
// bounds. It is safe for concurrent use: every method is read-only, so
// parallel chains may share one Model.
type Model struct {
	nPat     int
	offsets  []int // observation index range of individual i: [offsets[i], offsets[i+1])
	doses    []float64
	outcomes []float64
	bounds   Bounds
}

// New validates obs and b and builds a Model with observations grouped
// by individual. It never repairs bad input: any violation of the data
// invariants yields a sentinel configuration error.
func New(obs []Observation, b Bounds) (*Model, error) {
	if len(obs) == 0 {
		return nil, ErrNoObservations
	}
	if !(b.Lower < b.Upper) || math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0) ||
		math.IsNaN(b.Lower) || math.IsNaN(b.Upper) {
		return nil, ErrBadBounds
	}

	nPat := 0
	for _, o := range obs {
		if o.Dose < 0 || math.IsNaN(o.Dose) || math.IsInf(o.Dose, 0) {
			return nil, ErrBadDose
		}
		if o.Outcome < 0 || math.IsNaN(o.Outcome) || math.IsInf(o.Outcome, 0) {
			return nil, ErrBadOutcome
		}
		if o.Individual < 1 {
			return nil, ErrBadIndividual
		}
		if o.Individual > nPat {
			nPat = o.Individual
		}
	}

	// Counting pass: every ID in 1..nPat must appear at least once.
	counts := make([]int, nPat+1)
	for _, o := range obs {
		counts[o.Individual]++
	}
	m := &Model{
		nPat:     nPat,
		offsets:  make([]int, nPat+1),
		doses:    make([]float64, len(obs)),
		outcomes: make([]float64, len(obs)),
		bounds:   b,
	}
	for id := 1; id <= nPat; id++ {
		if counts[id] == 0 {
			return nil, ErrBadIndividual
		}
		m.offsets[id] = m.offsets[id-1] + counts[id]
	}

	// Stable counting sort of the observations into per-individual runs.
	next := make([]int, nPat)
	copy(next, m.offsets[:nPat])
	for _, o := range obs {
		at := next[o.Individual-1]
		m.doses[at] = o.Dose
		m.outcomes[at] = o.Outcome
		next[o.Individual-1]++
	}

	return m, nil
}

// NumIndividuals returns Npat.
func (m *Model) NumIndividuals() int { return m.nPat }

// NumObservations returns the total observation count.
func (m *Model) NumObservations() int { return len(m.doses) }

// Bounds returns the breakpoint support.
func (m *Model) Bounds() Bounds { return m.bounds }

// Dim returns the length of the unconstrained parameter vector:
// 10 shared coordinates plus 3 raw deviations per individual.
func (m *Model) Dim() int { return fixedDim + nEffects*m.nPat }

// zOffset returns the index of individual i's (0-based) raw deviation
// block inside the unconstrained vector.
func zOffset(i int) int { return fixedDim + nEffects*i }

// LogDensityGradient evaluates the log-unnormalized-posterior density at
// the unconstrained theta and writes its gradient into grad (len Dim()).
// The density folds in the transform log-Jacobians, so proposals and
// gradients live entirely in unconstrained space.
//
// ok=false signals a numerically degenerate point (overflowing scales,
// collapsing correlation factor, non-finite gradient); the sampler must
// treat such a proposal as divergent. The method never panics on
// overflow and allocates nothing.
func (m *Model) LogDensityGradient(theta, grad []float64) (lp float64, ok bool) {
	for i := range grad {
		grad[i] = 0
	}

	const invVar = 1 / (PriorScale * PriorScale)

	beta0 := theta[idxBeta0]
	beta1 := theta[idxBeta1]
	kp, kpJac := transform.Bounded(theta[idxKp], m.bounds.Lower, m.bounds.Upper)
	dKp, dKpJac := transform.BoundedGrad(theta[idxKp], m.bounds.Lower, m.bounds.Upper)

	var sd [3]float64
	for k := 0; k < nEffects; k++ {
		sd[k], _ = transform.Positive(theta[idxUSD+k])
	}
	sigma, _ := transform.Positive(theta[idxYSD])

	chol, valid := transform.CorrCholesky3(theta[idxCorr : idxCorr+nEffects])
	if !valid {
		return 0, false
	}
	L := chol.L

	// Priors on the shared parameters, plus transform Jacobians.
	lp = -0.5 * (beta0*beta0 + beta1*beta1) * invVar
	for k := 0; k < nEffects; k++ {
		lp += -0.5*sd[k]*sd[k]*invVar + theta[idxUSD+k] // half-Normal + log-Jacobian
	}
	lp += -0.5*sigma*sigma*invVar + theta[idxYSD]
	lp += kpJac                             // Uniform prior contributes only its Jacobian
	lp += chol.LogJac + math.Log(L[1][1])   // LKJ(1): (K-i)·log L_ii reduces to log L₂₂
	lp -= float64(len(m.doses)) * math.Log(sigma)

	invSig2 := 1 / (sigma * sigma)

	var (
		sumKp  float64    // Σ_i ∂loglik/∂alpha[i,3]
		sdAcc  [3]float64 // Σ_i ∂loglik/∂alpha[i,k] · v[i,k]
		S      [3][3]float64
		sigAcc float64 // Σ_j (r²/σ² − 1)
	)

	for i := 0; i < m.nPat; i++ {
		zo := zOffset(i)
		z0, z1, z2 := theta[zo], theta[zo+1], theta[zo+2]
		lp -= 0.5 * (z0*z0 + z1*z1 + z2*z2) // standard normal raw deviations

		// Non-centered deviations: u = diag(sd)·L·z.
		v0 := z0
		v1 := L[1][0]*z0 + L[1][1]*z1
		v2 := L[2][0]*z0 + L[2][1]*z1 + L[2][2]*z2
		a0 := beta0 + sd[0]*v0
		a1 := beta1 + sd[1]*v1
		a2 := kp + sd[2]*v2

		var g0, g1, g2 float64
		for j := m.offsets[i]; j < m.offsets[i+1]; j++ {
			d := m.doses[j] - a2
			mu := BrokenStick(m.doses[j], a0, a1, a2)
			r := m.outcomes[j] - mu
			lp -= 0.5 * r * r * invSig2

			g := r * invSig2
			g0 += g
			g1 += g * math.Min(d, 0)
			if d < 0 {
				g2 -= g * a1
			}
			sigAcc += r*r*invSig2 - 1
		}

		grad[idxBeta0] += g0
		grad[idxBeta1] += g1
		sumKp += g2
		sdAcc[0] += g0 * v0
		sdAcc[1] += g1 * v1
		sdAcc[2] += g2 * v2

		// Gradient through u = diag(sd)·L·z back to the raw deviations.
		q0 := g0 * sd[0]
		q1 := g1 * sd[1]
		q2 := g2 * sd[2]
		grad[zo] = q0 + q1*L[1][0] + q2*L[2][0] - z0
		grad[zo+1] = q1*L[1][1] + q2*L[2][1] - z1
		grad[zo+2] = q2*L[2][2] - z2

		// Sensitivities to the free Cholesky entries: ∂lp/∂L[a][b] = q_a·z_b.
		S[1][0] += q1 * z0
		S[1][1] += q1 * z1
		S[2][0] += q2 * z0
		S[2][1] += q2 * z1
		S[2][2] += q2 * z2
	}

	grad[idxBeta0] -= beta0 * invVar
	grad[idxBeta1] -= beta1 * invVar
	grad[idxKp] = sumKp*dKp + dKpJac
	for k := 0; k < nEffects; k++ {
		grad[idxUSD+k] = sd[k]*(sdAcc[k]-sd[k]*invVar) + 1
	}
	grad[idxYSD] = sigAcc - sigma*sigma*invVar + 1

	cg := chol.ChainGrad(S)
	grad[idxCorr] = cg[0] - chol.Z[0] // extra −z₁ from the LKJ(1) log L₂₂ term
	grad[idxCorr+1] = cg[1]
	grad[idxCorr+2] = cg[2]

	if math.IsNaN(lp) || math.IsInf(lp, 0) {
		return 0, false
	}
	for _, g := range grad {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return 0, false
		}
	}

	return lp, true
}

// Constrain maps an unconstrained draw back to constrained reporting
// space. keep selects the individuals (1-based IDs) whose alpha triples
// are materialized; IDs outside 1..Npat are skipped silently — the
// orchestrator validates the subset up front.
func (m *Model) Constrain(theta []float64, keep []int) Draw {
	var d Draw
	d.Beta[0] = theta[idxBeta0]
	d.Beta[1] = theta[idxBeta1]
	d.Breakpoint, _ = transform.Bounded(theta[idxKp], m.bounds.Lower, m.bounds.Upper)
	for k := 0; k < nEffects; k++ {
		d.USD[k], _ = transform.Positive(theta[idxUSD+k])
	}
	d.YSD, _ = transform.Positive(theta[idxYSD])

	chol, _ := transform.CorrCholesky3(theta[idxCorr : idxCorr+nEffects])
	d.CorrChol = chol.L

	if len(keep) == 0 {
		return d
	}
	d.Individuals = make([]int, 0, len(keep))
	d.Alpha = make([][3]float64, 0, len(keep))
	L := chol.L
	for _, id := range keep {
		if id < 1 || id > m.nPat {
			continue
		}
		zo := zOffset(id - 1)
		z0, z1, z2 := theta[zo], theta[zo+1], theta[zo+2]
		d.Individuals = append(d.Individuals, id)
		d.Alpha = append(d.Alpha, [3]float64{
			d.Beta[0] + d.USD[0]*z0,
			d.Beta[1] + d.USD[1]*(L[1][0]*z0+L[1][1]*z1),
			d.Breakpoint + d.USD[2]*(L[2][0]*z0+L[2][1]*z1+L[2][2]*z2),
		})
	}

	return d
}
