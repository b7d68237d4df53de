package hmc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// subtree summarizes one finished trajectory subtree.
type subtree struct {
	prop   point     // multinomially selected candidate
	logW   float64   // log Σ exp(H₀ − H) over the subtree's points
	rho    []float64 // momentum sum over the subtree
	rMinus []float64 // momentum at the inward endpoint
	rPlus  []float64 // momentum at the outward endpoint
}

// transition performs one full NUTS update of c.cur.
func (c *Chain) transition() {
	c.sampleMomentum(&c.cur)
	h0 := c.hamiltonian(c.cur)

	c.stepAcceptSum = 0
	c.stepLeaves = 0
	c.stepDiverged = false

	fwd := c.cur.clone()
	bwd := c.cur.clone()
	prop := c.cur.clone()
	rho := append([]float64(nil), c.cur.r...)
	logW := 0.0 // the initial point carries weight exp(H₀−H₀) = 1

	exhausted := true
	for depth := 0; depth < c.opts.MaxTreeDepth; depth++ {
		var (
			sub subtree
			ok  bool
		)
		if c.rng.Uint64()&1 == 0 {
			sub, ok = c.buildTree(depth, +1, &fwd, h0)
		} else {
			sub, ok = c.buildTree(depth, -1, &bwd, h0)
		}
		if !ok {
			exhausted = false

			break // divergence or internal U-turn: discard the subtree
		}

		// Biased progressive sampling: Metropolis-corrected swap toward
		// the fresh subtree.
		if math.Log(c.rng.Float64()) < sub.logW-logW {
			prop.copyFrom(sub.prop)
		}
		logW = logSumExp(logW, sub.logW)
		floats.Add(rho, sub.rho)

		if c.uTurn(rho, bwd.r, fwd.r) {
			exhausted = false

			break
		}
	}
	if exhausted {
		c.depthExceeded++
	}
	if c.stepDiverged {
		c.divergences++
	}

	c.cur.copyFrom(prop)
}

// buildTree extends the trajectory by 2^depth leapfrog steps in
// direction dir starting from *edge, which advances to the new outward
// endpoint. ok=false invalidates the subtree (divergence or U-turn
// inside it); the caller must stop extending.
func (c *Chain) buildTree(depth int, dir float64, edge *point, h0 float64) (subtree, bool) {
	if depth == 0 {
		if !c.leapfrog(edge, dir*c.eps) {
			c.stepDiverged = true

			return subtree{}, false
		}
		h := c.hamiltonian(*edge)
		if math.IsNaN(h) || h-h0 > maxEnergyError {
			c.stepDiverged = true

			return subtree{}, false
		}
		logW := h0 - h
		c.stepLeaves++
		c.stepAcceptSum += math.Min(1, math.Exp(logW))

		return subtree{
			prop:   edge.clone(),
			logW:   logW,
			rho:    append([]float64(nil), edge.r...),
			rMinus: append([]float64(nil), edge.r...),
			rPlus:  append([]float64(nil), edge.r...),
		}, true
	}

	first, ok := c.buildTree(depth-1, dir, edge, h0)
	if !ok {
		return subtree{}, false
	}
	second, ok := c.buildTree(depth-1, dir, edge, h0)
	if !ok {
		return subtree{}, false
	}

	logW := logSumExp(first.logW, second.logW)
	// Exact multinomial selection between the halves.
	if math.Log(c.rng.Float64()) < second.logW-logW {
		first.prop.copyFrom(second.prop)
	}
	floats.Add(first.rho, second.rho)
	if c.uTurn(first.rho, first.rMinus, second.rPlus) {
		return subtree{}, false
	}
	first.logW = logW
	first.rPlus = second.rPlus

	return first, true
}

// uTurn implements the generalized no-U-turn criterion: the trajectory
// has turned back when the momentum sum rho points away from either
// endpoint's velocity M⁻¹r.
func (c *Chain) uTurn(rho, rMinus, rPlus []float64) bool {
	dm, dp := 0.0, 0.0
	for i := range rho {
		dm += c.invMass[i] * rMinus[i] * rho[i]
		dp += c.invMass[i] * rPlus[i] * rho[i]
	}

	return dm <= 0 || dp <= 0
}

// logSumExp is the numerically stable log(eᵃ+eᵇ).
func logSumExp(a, b float64) float64 {
	m := math.Max(a, b)
	if math.IsInf(m, -1) {
		return m
	}

	return m + math.Log(math.Exp(a-m)+math.Exp(b-m))
}
