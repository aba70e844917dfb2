package solve

import (
	"errors"
	"fmt"
	"math"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
)

// Configuration errors, detected before integration begins. Everything
// else the integration produces, divergence included, is a result.
var (
	ErrInvalidHorizon  = errors.New("solve: t_max must be positive")
	ErrInvalidStepSize = errors.New("solve: step_size must be positive and at most t_max")
)

// Solver runs fixed-step integrations of one scheme. The zero value is
// not usable; construct with New.
type Solver struct {
	stepper Stepper
}

func New(stepper Stepper) *Solver {
	return &Solver{stepper: stepper}
}

// Stepper returns the scheme this solver runs.
func (sv *Solver) Stepper() Stepper { return sv.stepper }

// Solve integrates p's variant from the given initial state over
// (0, t_max] and returns the full sampled trajectory.
//
// The sample count is floor(t_max/step_size)+1, deterministic in the
// integration controls and independent of the physical parameters.
// Sample 0 is the initial condition; sample times are i*step_size,
// clamped so the last one does not exceed t_max. The input ParameterSet
// and State are never retained or mutated.
func (sv *Solver) Solve(p *model.ParameterSet, initial model.State) (*Trajectory, error) {
	if p.TMax <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidHorizon, p.TMax)
	}
	if p.StepSize <= 0 || p.StepSize > p.TMax {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidStepSize, p.StepSize)
	}

	dt := p.StepSize
	n := int(math.Floor(p.TMax / dt))

	tr := &Trajectory{
		Times:      make([]float64, n+1),
		Robustness: make([]float64, n+1),
		Adaptivity: make([]float64, n+1),
	}

	s := initial
	tr.Times[0] = 0
	tr.Robustness[0] = s.R
	tr.Adaptivity[0] = s.A

	for i := 1; i <= n; i++ {
		s = sv.stepper.Step(p, s, dt)

		t := float64(i) * dt
		if t > p.TMax {
			t = p.TMax
		}
		tr.Times[i] = t
		tr.Robustness[i] = s.R
		tr.Adaptivity[i] = s.A
	}

	return tr, nil
}
