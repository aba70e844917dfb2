package solve

import "github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"

// Stepper advances the state by one fixed step of size dt.
type Stepper interface {
	Step(p *model.ParameterSet, s model.State, dt float64) model.State
	Name() string
}

// Euler is the forward-Euler scheme, the one the original dashboard
// runs. First order, and the reference for golden trajectories.
type Euler struct{}

func NewEuler() Euler { return Euler{} }

func (Euler) Name() string { return "euler" }

func (Euler) Step(p *model.ParameterSet, s model.State, dt float64) model.State {
	d := p.Derive(s)
	return model.State{
		R: s.R + dt*d.R,
		A: s.A + dt*d.A,
	}
}

// RK4 is the classic fourth-order Runge-Kutta scheme. Same sample
// spacing as Euler, better accuracy per step.
type RK4 struct{}

func NewRK4() RK4 { return RK4{} }

func (RK4) Name() string { return "rk4" }

func (RK4) Step(p *model.ParameterSet, s model.State, dt float64) model.State {
	k1 := p.Derive(s)
	k2 := p.Derive(model.State{R: s.R + dt*0.5*k1.R, A: s.A + dt*0.5*k1.A})
	k3 := p.Derive(model.State{R: s.R + dt*0.5*k2.R, A: s.A + dt*0.5*k2.A})
	k4 := p.Derive(model.State{R: s.R + dt*k3.R, A: s.A + dt*k3.A})

	dt6 := dt / 6.0
	return model.State{
		R: s.R + dt6*(k1.R+2*k2.R+2*k3.R+k4.R),
		A: s.A + dt6*(k1.A+2*k2.A+2*k3.A+k4.A),
	}
}

// NewStepper maps a config/CLI name to a Stepper.
func NewStepper(name string) (Stepper, bool) {
	switch name {
	case "euler":
		return Euler{}, true
	case "rk4":
		return RK4{}, true
	}
	return nil, false
}
