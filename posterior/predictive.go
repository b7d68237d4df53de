package posterior

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/lvbayes/changepoint"
)

// Predict simulates posterior-predictive outcomes at every grid point
// for every draw: mu is the broken-stick mean under the draw's alpha for
// the queried individual, and the outcome is one Normal(mu, y_sd) sample
// using that draw's residual scale and the provided source.
//
// Every query individual must appear in the draws' retained subset;
// otherwise ErrUnknownIndividual identifies the contract violation
// (retention is decided at sampling time to bound memory).
func Predict(draws []changepoint.Draw, grid []QueryPoint, src rand.Source) (*Predictive, error) {
	if len(draws) == 0 {
		return nil, ErrNoDraws
	}
	if len(grid) == 0 {
		return nil, ErrEmptyGrid
	}

	// The retained subset is identical across draws of a run; index the
	// first draw and validate the grid against it.
	slot := make(map[int]int, len(draws[0].Individuals))
	for k, id := range draws[0].Individuals {
		slot[id] = k
	}
	for _, q := range grid {
		if _, found := slot[q.Individual]; !found {
			return nil, ErrUnknownIndividual
		}
	}

	p := &Predictive{
		Points:   append([]QueryPoint(nil), grid...),
		Outcomes: make([][]float64, len(draws)),
		Mean:     make([]float64, len(grid)),
	}
	for di, d := range draws {
		row := make([]float64, len(grid))
		for pi, q := range grid {
			a := d.Alpha[slot[q.Individual]]
			mu := changepoint.BrokenStick(q.Dose, a[0], a[1], a[2])
			row[pi] = distuv.Normal{Mu: mu, Sigma: d.YSD, Src: src}.Rand()
			p.Mean[pi] += row[pi]
		}
		p.Outcomes[di] = row
	}
	for pi := range p.Mean {
		p.Mean[pi] /= float64(len(draws))
	}

	return p, nil
}
