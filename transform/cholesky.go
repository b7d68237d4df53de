// SPDX-License-Identifier: MIT

package transform

import "math"

// CorrChol is the constrained image of three unconstrained reals under
// the tanh stick-breaking transform: a 3×3 lower-triangular Cholesky
// factor L of a correlation matrix, with L·Lᵗ having a unit diagonal.
//
// Z holds the canonical partial correlations tanh(raw_k); LogJac is the
// log-Jacobian of the full raw→L map (tanh terms plus stick-breaking
// scaling terms).
type CorrChol struct {
	Z      [3]float64
	L      [3][3]float64
	LogJac float64
}

// CorrCholesky3 builds the correlation Cholesky factor from raw, which
// must hold exactly 3 unconstrained entries (the strictly-lower-triangle
// free parameters in row-major order).
//
// The second return is false when the factor degenerates — |tanh| rounds
// to 1 and a row norm collapses — which callers must treat as a
// divergent proposal, not a fatal error.
func CorrCholesky3(raw []float64) (CorrChol, bool) {
	var c CorrChol
	c.Z[0] = math.Tanh(raw[0])
	c.Z[1] = math.Tanh(raw[1])
	c.Z[2] = math.Tanh(raw[2])

	w1 := 1 - c.Z[0]*c.Z[0]
	w2 := 1 - c.Z[1]*c.Z[1]
	w3 := 1 - c.Z[2]*c.Z[2]
	if w1 <= 0 || w2 <= 0 || w3 <= 0 {
		return CorrChol{}, false
	}

	c.L[0][0] = 1
	c.L[1][0] = c.Z[0]
	c.L[1][1] = math.Sqrt(w1)
	c.L[2][0] = c.Z[1]
	s2 := math.Sqrt(w2)
	c.L[2][1] = c.Z[2] * s2
	c.L[2][2] = math.Sqrt(w2 * w3)

	// tanh terms + the 0.5·log(1-z₂²) scaling term from the L₃₂ entry.
	c.LogJac = math.Log(w1) + 1.5*math.Log(w2) + math.Log(w3)
	if math.IsInf(c.LogJac, 0) || math.IsNaN(c.LogJac) {
		return CorrChol{}, false
	}

	return c, true
}

// ChainGrad maps partial derivatives with respect to the L entries into
// derivatives with respect to the three raw unconstrained entries,
// adding the derivative of LogJac. Only the strictly-lower entries of dL
// are read (the unit L₀₀ is not a free parameter).
func (c CorrChol) ChainGrad(dL [3][3]float64) [3]float64 {
	w1 := 1 - c.Z[0]*c.Z[0]
	w2 := 1 - c.Z[1]*c.Z[1]
	w3 := 1 - c.Z[2]*c.Z[2]
	s2 := math.Sqrt(w2)
	s3 := math.Sqrt(w3)

	var g [3]float64
	// Row 2: L₁₀ = z₁, L₁₁ = √(1-z₁²); dz/dt = 1-z².
	g[0] = w1*(dL[1][0]-dL[1][1]*c.Z[0]/c.L[1][1]) - 2*c.Z[0]
	// Row 3 via z₂: L₂₀ = z₂, L₂₁ = z₃√(1-z₂²), L₂₂ = √((1-z₂²)(1-z₃²)).
	g[1] = w2*(dL[2][0]-dL[2][1]*c.Z[1]*c.Z[2]/s2-dL[2][2]*c.Z[1]*s3/s2) - 3*c.Z[1]
	// Row 3 via z₃.
	g[2] = w3*(dL[2][1]*s2-dL[2][2]*c.Z[2]*s2/s3) - 2*c.Z[2]

	return g
}
