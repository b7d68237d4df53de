package posterior

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// splitHalves splits every chain into its two halves (Gelman's split
// trick, so within-chain drift shows up as between-chain disagreement).
// Ragged chains are truncated to the shortest length.
func splitHalves(chains [][]float64) ([][]float64, error) {
	if len(chains) == 0 {
		return nil, ErrNoChains
	}
	n := len(chains[0])
	for _, c := range chains {
		if len(c) < n {
			n = len(c)
		}
	}
	if n < 4 {
		return nil, ErrShortChain
	}

	half := n / 2
	seqs := make([][]float64, 0, 2*len(chains))
	for _, c := range chains {
		seqs = append(seqs, c[:half], c[n-half:n])
	}

	return seqs, nil
}

// SplitRHat computes the split-chain potential scale reduction factor
// for one scalar parameter. chains[c] is chain c's draw sequence.
// Values near 1.0 indicate convergence; constant chains report exactly 1.
func SplitRHat(chains [][]float64) (float64, error) {
	seqs, err := splitHalves(chains)
	if err != nil {
		return 0, err
	}

	n := float64(len(seqs[0]))
	means := make([]float64, len(seqs))
	vars := make([]float64, len(seqs))
	for j, s := range seqs {
		means[j] = stat.Mean(s, nil)
		vars[j] = stat.Variance(s, nil)
	}

	w := stat.Mean(vars, nil)
	b := n * stat.Variance(means, nil)
	if w <= 0 {
		return 1, nil
	}
	varPlus := (n-1)/n*w + b/n

	return math.Sqrt(varPlus / w), nil
}

// ESS estimates the effective sample size of one scalar parameter over
// all chains, using Geyer's initial monotone positive sequence over
// paired autocorrelations of the split chains.
func ESS(chains [][]float64) (float64, error) {
	seqs, err := splitHalves(chains)
	if err != nil {
		return 0, err
	}

	n := len(seqs[0])
	m := len(seqs)
	total := float64(m * n)

	means := make([]float64, m)
	vars := make([]float64, m)
	for j, s := range seqs {
		means[j] = stat.Mean(s, nil)
		vars[j] = stat.Variance(s, nil)
	}
	w := stat.Mean(vars, nil)
	b := float64(n) * stat.Variance(means, nil)
	varPlus := float64(n-1)/float64(n)*w + b/float64(n)
	if varPlus <= 0 {
		return total, nil
	}

	// Mean autocovariance across split chains at each lag.
	acov := make([]float64, n)
	for j, s := range seqs {
		for t := 0; t < n; t++ {
			sum := 0.0
			for i := 0; i+t < n; i++ {
				sum += (s[i] - means[j]) * (s[i+t] - means[j])
			}
			acov[t] += sum / float64(n) / float64(m)
		}
	}

	rho := make([]float64, n)
	for t := 0; t < n; t++ {
		rho[t] = 1 - (w-acov[t])/varPlus
	}

	// Geyer pairs: accumulate while pair sums stay positive, enforcing
	// monotone non-increase.
	tau := -1.0
	prev := math.Inf(1)
	for k := 0; 2*k+1 < n; k++ {
		pair := rho[2*k] + rho[2*k+1]
		if pair <= 0 {
			break
		}
		if pair > prev {
			pair = prev
		}
		prev = pair
		tau += 2 * pair
	}
	ess := total / tau
	// Antithetic chains can push tau below 1; cap conservatively at the
	// raw draw count.
	if tau <= 0 || ess > total {
		ess = total
	}

	return ess, nil
}
