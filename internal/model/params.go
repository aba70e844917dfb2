package model

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for parameter access.
var (
	// ErrUnknownParam indicates a name outside the active variant's key set.
	ErrUnknownParam = errors.New("model: unknown parameter")

	// ErrNonFinite indicates an attempt to set a NaN or Inf value.
	ErrNonFinite = errors.New("model: parameter value must be finite")
)

// State holds robustness and adaptivity at one instant.
type State struct {
	R, A float64
}

// IsFinite reports whether both components are ordinary numbers.
func (s State) IsFinite() bool {
	return !math.IsNaN(s.R) && !math.IsInf(s.R, 0) &&
		!math.IsNaN(s.A) && !math.IsInf(s.A, 0)
}

// Variant selects the active right-hand side.
type Variant int

const (
	Baseline Variant = iota
	Saturating
)

func (v Variant) String() string {
	switch v {
	case Baseline:
		return "baseline"
	case Saturating:
		return "saturating"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant maps a config/CLI name to a Variant.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "baseline":
		return Baseline, nil
	case "saturating":
		return Saturating, nil
	}
	return Baseline, fmt.Errorf("unknown variant: %s", name)
}

// ParameterSet is a named bundle of physical constants plus integration
// controls for one model variant. The variant is fixed at construction;
// everything else is mutable through Set.
type ParameterSet struct {
	variant Variant

	Q       float64
	AlphaR  float64
	GammaR0 float64
	GammaR2 float64
	BetaA   float64
	AlphaA  float64
	GammaA  float64
	BetaR   float64

	// Saturating variant only.
	KR float64
	KA float64
	R0 float64
	A0 float64

	TMax     float64
	StepSize float64
}

// Initial values of the original dashboard.
const (
	DefaultTMax     = 100.0
	DefaultStepSize = 0.1
)

// NewBaseline returns a baseline ParameterSet with the dashboard's
// initial parameter values.
func NewBaseline() *ParameterSet {
	return &ParameterSet{
		variant: Baseline,
		Q:       0.29,
		AlphaR:  0.29,
		GammaR0: 1.27,
		GammaR2: 1.41,
		BetaA:   0.68,
		AlphaA:  0.07,
		GammaA:  0.25,
		BetaR:   0.34,

		TMax:     DefaultTMax,
		StepSize: DefaultStepSize,
	}
}

// NewSaturating returns a saturating ParameterSet. The coupling scales
// default to 1 and the reference point to the initial state, so the
// saturating dynamics start close to the baseline ones.
func NewSaturating() *ParameterSet {
	p := NewBaseline()
	p.variant = Saturating
	p.KR = 1.0
	p.KA = 1.0
	p.R0 = InitialState().R
	p.A0 = InitialState().A
	return p
}

// InitialState is the fixed initial condition of the dashboard,
// ln 0.5 on both axes.
func InitialState() State {
	v := math.Log(0.5)
	return State{R: v, A: v}
}

// Variant returns the right-hand-side variant fixed at construction.
func (p *ParameterSet) Variant() Variant { return p.variant }

var baselineKeys = []string{
	"q", "alpha_r", "gamma_r0", "gamma_r2",
	"beta_a", "alpha_a", "gamma_a", "beta_r",
	"t_max", "step_size",
}

var saturatingKeys = []string{
	"q", "alpha_r", "gamma_r0", "gamma_r2",
	"beta_a", "alpha_a", "gamma_a", "beta_r",
	"k_r", "k_a", "r_0", "a_0",
	"t_max", "step_size",
}

// Keys returns the variant's recognized parameter names in slider order,
// integration controls last.
func (p *ParameterSet) Keys() []string {
	if p.variant == Saturating {
		return append([]string(nil), saturatingKeys...)
	}
	return append([]string(nil), baselineKeys...)
}

func (p *ParameterSet) field(name string) (*float64, bool) {
	switch name {
	case "q":
		return &p.Q, true
	case "alpha_r":
		return &p.AlphaR, true
	case "gamma_r0":
		return &p.GammaR0, true
	case "gamma_r2":
		return &p.GammaR2, true
	case "beta_a":
		return &p.BetaA, true
	case "alpha_a":
		return &p.AlphaA, true
	case "gamma_a":
		return &p.GammaA, true
	case "beta_r":
		return &p.BetaR, true
	case "t_max":
		return &p.TMax, true
	case "step_size":
		return &p.StepSize, true
	}
	if p.variant == Saturating {
		switch name {
		case "k_r":
			return &p.KR, true
		case "k_a":
			return &p.KA, true
		case "r_0":
			return &p.R0, true
		case "a_0":
			return &p.A0, true
		}
	}
	return nil, false
}

// Get returns the value of a named parameter.
func (p *ParameterSet) Get(name string) (float64, error) {
	f, ok := p.field(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return *f, nil
}

// Set overwrites one entry. Any finite value is legal, including values
// far outside the slider ranges; range guarding belongs to the UI.
func (p *ParameterSet) Set(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s", ErrNonFinite, name)
	}
	f, ok := p.field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	*f = value
	return nil
}

// ApplyPreset replaces all entries with the preset's values. The preset
// must belong to the same variant.
func (p *ParameterSet) ApplyPreset(preset *ParameterSet) error {
	if preset.variant != p.variant {
		return fmt.Errorf("preset variant %s does not match %s", preset.variant, p.variant)
	}
	*p = *preset
	return nil
}

// Clone returns an independent copy.
func (p *ParameterSet) Clone() *ParameterSet {
	c := *p
	return &c
}

// Params returns a name -> value snapshot of the variant's parameters.
func (p *ParameterSet) Params() map[string]float64 {
	m := make(map[string]float64, len(saturatingKeys))
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		m[k] = v
	}
	return m
}
