package hmc_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvbayes/hmc"
)

// normalTarget is an isotropic standard normal of fixed dimension.
type normalTarget struct{ dim int }

func (t normalTarget) Dim() int { return t.dim }

func (t normalTarget) LogDensityGradient(theta, grad []float64) (float64, bool) {
	lp := 0.0
	for i, x := range theta {
		lp -= 0.5 * x * x
		grad[i] = -x
	}

	return lp, true
}

// benchmarkRun measures a complete warm-up + sampling run on a standard
// normal of the given dimension.
func benchmarkRun(b *testing.B, dim int) {
	opts := hmc.DefaultOptions()
	opts.Warmup = 200
	opts.Iterations = 200

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		opts.Seed = uint64(i)
		c, err := hmc.NewChain(normalTarget{dim: dim}, opts)
		if err != nil {
			b.Fatalf("NewChain failed: %v", err)
		}
		if _, err := c.Run(context.Background()); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

// BenchmarkRun_Dim10 benchmarks a 10-dimensional chain.
func BenchmarkRun_Dim10(b *testing.B) { benchmarkRun(b, 10) }

// BenchmarkRun_Dim50 benchmarks a 50-dimensional chain.
func BenchmarkRun_Dim50(b *testing.B) { benchmarkRun(b, 50) }

// BenchmarkRun_Dim200 benchmarks a 200-dimensional chain.
func BenchmarkRun_Dim200(b *testing.B) { benchmarkRun(b, 200) }
