package export

import (
	"math"
	"strings"
	"testing"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"
)

func TestTimeseriesSVG(t *testing.T) {
	tr, err := solve.New(solve.NewEuler()).Solve(model.NewBaseline(), model.InitialState())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	svg := TimeseriesSVG(tr, 500, 300)
	if !strings.HasPrefix(svg, `<?xml`) || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("malformed svg document")
	}
	if strings.Count(svg, "<path") != 2 {
		t.Errorf("expected two paths, got %d", strings.Count(svg, "<path"))
	}
	if !strings.Contains(svg, ColorRobustness) || !strings.Contains(svg, ColorAdaptivity) {
		t.Error("expected dashboard colors")
	}
}

func TestPhaseSVGSkipsDivergedTail(t *testing.T) {
	tr := &solve.Trajectory{
		Times:      []float64{0, 1, 2, 3},
		Robustness: []float64{0, 1, math.Inf(1), math.Inf(1)},
		Adaptivity: []float64{0, 1, 2, math.NaN()},
	}

	svg := PhaseSVG(tr, 100, 100)
	if strings.Contains(svg, "Inf") || strings.Contains(svg, "NaN") {
		t.Error("non-finite coordinates leaked into the svg")
	}
}
