package posterior

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvbayes/changepoint"
)

// Correlation reconstructs the deviation correlation matrix L·Lᵗ from a
// draw's Cholesky factor.
func Correlation(d changepoint.Draw) *mat.SymDense {
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data[3*i+j] = d.CorrChol[i][j]
		}
	}
	l := mat.NewTriDense(3, mat.Lower, data)

	var s mat.SymDense
	s.SymOuterK(1, l)

	return &s
}

// Covariance reconstructs diag(u_sd)·L·Lᵗ·diag(u_sd), the covariance of
// the per-individual deviation vectors.
func Covariance(d changepoint.Draw) *mat.SymDense {
	corr := Correlation(d)
	cov := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			cov.SetSym(i, j, d.USD[i]*d.USD[j]*corr.At(i, j))
		}
	}

	return cov
}
