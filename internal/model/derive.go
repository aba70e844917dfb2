package model

import "math"

// Derive evaluates the right-hand side of the active variant at s.
// The system is autonomous; time does not enter the equations.
//
// Baseline:
//
//	dr/dt = alpha_r(1-q) + gamma_r0 r - gamma_r2 r^3 - beta_a a
//	da/dt = alpha_a q - gamma_a a + beta_r r
//
// Saturating replaces the cross-coupling terms with sat(x, k) = kx/(k+|x|)
// around the reference point (r_0, a_0). As k grows the baseline coupling
// is recovered; for small k the feedback between the two variables is
// bounded by beta*k.
func (p *ParameterSet) Derive(s State) State {
	switch p.variant {
	case Saturating:
		dr := p.AlphaR*(1.0-p.Q) + p.GammaR0*s.R - p.GammaR2*s.R*s.R*s.R - p.BetaA*sat(s.A-p.A0, p.KA)
		da := p.AlphaA*p.Q - p.GammaA*s.A + p.BetaR*sat(s.R-p.R0, p.KR)
		return State{R: dr, A: da}
	default:
		dr := p.AlphaR*(1.0-p.Q) + p.GammaR0*s.R - p.GammaR2*s.R*s.R*s.R - p.BetaA*s.A
		da := p.AlphaA*p.Q - p.GammaA*s.A + p.BetaR*s.R
		return State{R: dr, A: da}
	}
}

func sat(x, k float64) float64 {
	return k * x / (k + math.Abs(x))
}
