package solve

import (
	"math"
	"testing"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
)

// decayParams reduces the system to dr/dt = -r, da/dt = 0, whose exact
// solution is r(t) = r0 * exp(-t).
func decayParams(t *testing.T) *model.ParameterSet {
	t.Helper()
	p := model.NewBaseline()
	for _, k := range []string{"q", "alpha_r", "gamma_r2", "beta_a", "alpha_a", "gamma_a", "beta_r"} {
		if err := p.Set(k, 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := p.Set("gamma_r0", -1); err != nil {
		t.Fatalf("set gamma_r0: %v", err)
	}
	return p
}

func TestRK4Accuracy(t *testing.T) {
	p := decayParams(t)
	st := NewRK4()

	s := model.State{R: 1, A: 0.5}
	dt := 0.01
	for i := 0; i < 100; i++ {
		s = st.Step(p, s, dt)
	}

	want := math.Exp(-1.0)
	if math.Abs(s.R-want) > 1e-8 {
		t.Errorf("rk4: got %.12f, want %.12f", s.R, want)
	}
	if s.A != 0.5 {
		t.Errorf("rk4: adaptivity drifted to %g with zero da/dt", s.A)
	}
}

func TestEulerFirstOrderError(t *testing.T) {
	p := decayParams(t)
	st := NewEuler()

	s := model.State{R: 1, A: 0}
	dt := 0.01
	for i := 0; i < 100; i++ {
		s = st.Step(p, s, dt)
	}

	want := math.Exp(-1.0)
	err := math.Abs(s.R - want)
	if err > 5e-3 {
		t.Errorf("euler error too large: %.6f", err)
	}
	if err == 0 {
		t.Error("euler should not be exact on the exponential")
	}
}

func TestEulerSingleStepArithmetic(t *testing.T) {
	p := model.NewBaseline()
	s := model.State{R: 0.2, A: -0.1}
	dt := 0.1

	d := p.Derive(s)
	got := NewEuler().Step(p, s, dt)

	if got.R != s.R+dt*d.R || got.A != s.A+dt*d.A {
		t.Errorf("euler step deviates from r + dt*dr: %+v", got)
	}
}

func TestNewStepper(t *testing.T) {
	for _, name := range []string{"euler", "rk4"} {
		st, ok := NewStepper(name)
		if !ok || st.Name() != name {
			t.Errorf("NewStepper(%q) = %v, %v", name, st, ok)
		}
	}
	if _, ok := NewStepper("rk45"); ok {
		t.Error("expected unknown stepper to be rejected")
	}
}
