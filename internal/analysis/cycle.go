package analysis

import "github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"

// EstimatePeriod looks for a limit cycle in the robustness series by
// timing upward crossings through its mean and averaging their spacing.
// Returns 0 when fewer than two crossings exist (fixed point or
// diverged trajectory).
func EstimatePeriod(tr *solve.Trajectory) float64 {
	n := tr.FiniteUntil()
	if n < 0 {
		n = tr.Len()
	}
	if n < 3 {
		return 0
	}

	mean := 0.0
	for i := 0; i < n; i++ {
		mean += tr.Robustness[i]
	}
	mean /= float64(n)

	var crossings []float64
	for i := 1; i < n; i++ {
		prev, curr := tr.Robustness[i-1], tr.Robustness[i]
		if prev < mean && curr >= mean {
			// Interpolate the crossing time within the step.
			frac := (mean - prev) / (curr - prev)
			crossings = append(crossings, tr.Times[i-1]+frac*(tr.Times[i]-tr.Times[i-1]))
		}
	}
	if len(crossings) < 2 {
		return 0
	}

	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
}

// FiniteFraction reports how much of the horizon stayed numerically
// finite, 1.0 for a fully stable run.
func FiniteFraction(tr *solve.Trajectory) float64 {
	if tr.Len() == 0 {
		return 1.0
	}
	first := tr.FiniteUntil()
	if first < 0 {
		return 1.0
	}
	return float64(first) / float64(tr.Len())
}
