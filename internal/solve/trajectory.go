package solve

import (
	"math"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
)

// Trajectory is the sampled solution of one integration run: three
// index-aligned columns, sample i across all three describing one point
// in time. This is the sole contract the plotting layers depend on.
// A trajectory is immutable once returned by Solve.
type Trajectory struct {
	Times      []float64
	Robustness []float64
	Adaptivity []float64
}

// Len returns the number of samples.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// At returns sample i.
func (tr *Trajectory) At(i int) (t float64, s model.State) {
	return tr.Times[i], model.State{R: tr.Robustness[i], A: tr.Adaptivity[i]}
}

// Final returns the last sample.
func (tr *Trajectory) Final() (t float64, s model.State) {
	return tr.At(tr.Len() - 1)
}

// FiniteUntil returns the index of the first non-finite sample, or -1
// if the whole trajectory is finite. Samples from that index on stay
// non-finite; overflow does not recover under an explicit scheme.
func (tr *Trajectory) FiniteUntil() int {
	for i := range tr.Times {
		if !finite(tr.Robustness[i]) || !finite(tr.Adaptivity[i]) {
			return i
		}
	}
	return -1
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
