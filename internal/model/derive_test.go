package model

import (
	"math"
	"testing"
)

func TestDeriveBaseline(t *testing.T) {
	p := NewBaseline()
	s := State{R: 0.5, A: -0.2}

	d := p.Derive(s)

	wantR := p.AlphaR*(1-p.Q) + p.GammaR0*s.R - p.GammaR2*s.R*s.R*s.R - p.BetaA*s.A
	wantA := p.AlphaA*p.Q - p.GammaA*s.A + p.BetaR*s.R
	if d.R != wantR || d.A != wantA {
		t.Errorf("got (%v, %v), want (%v, %v)", d.R, d.A, wantR, wantA)
	}
}

func TestDeriveZeroParams(t *testing.T) {
	p := NewBaseline()
	for _, k := range p.Keys() {
		if k == "t_max" || k == "step_size" {
			continue
		}
		if err := p.Set(k, 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	d := p.Derive(State{R: 3.7, A: -1.2})
	if d.R != 0 || d.A != 0 {
		t.Errorf("zero parameters must give zero derivative, got %+v", d)
	}
}

func TestSaturatingApproachesBaseline(t *testing.T) {
	b := NewBaseline()
	s := NewSaturating()
	s.KR = 1e12
	s.KA = 1e12
	s.R0 = 0
	s.A0 = 0

	x := State{R: 0.3, A: 0.4}
	db := b.Derive(x)
	ds := s.Derive(x)

	if math.Abs(db.R-ds.R) > 1e-9 || math.Abs(db.A-ds.A) > 1e-9 {
		t.Errorf("large k should recover baseline coupling: baseline %+v, saturating %+v", db, ds)
	}
}

func TestSaturationBoundsCoupling(t *testing.T) {
	p := NewSaturating()
	p.KA = 0.5
	p.A0 = 0

	// However far a runs from the reference, the coupling term stays below beta_a*k_a.
	far := p.Derive(State{R: 0, A: 1e6})
	near := p.Derive(State{R: 0, A: 0})
	if math.Abs(far.R-near.R) > p.BetaA*p.KA+1e-12 {
		t.Errorf("coupling exceeded saturation bound: %v", math.Abs(far.R-near.R))
	}
}

func TestStateIsFinite(t *testing.T) {
	if !(State{R: 1, A: -2}).IsFinite() {
		t.Error("ordinary state reported non-finite")
	}
	if (State{R: math.NaN(), A: 0}).IsFinite() {
		t.Error("NaN state reported finite")
	}
	if (State{R: 0, A: math.Inf(1)}).IsFinite() {
		t.Error("Inf state reported finite")
	}
}
