package config

import "github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"

// Presets are complete ParameterSet snapshots of literature scenarios.
// "paper" carries the initial values of the published dashboard;
// "sliders" the default positions of its slider widgets.
var presets = map[model.Variant]map[string]func() *model.ParameterSet{
	model.Baseline: {
		"paper": model.NewBaseline,
		"sliders": func() *model.ParameterSet {
			p := model.NewBaseline()
			p.AlphaR = 0.11
			return p
		},
		"reference": func() *model.ParameterSet {
			// Fixed-point regime used by the golden solver test.
			p := model.NewBaseline()
			p.AlphaR = 0.12
			p.GammaR2 = 2.07
			p.GammaA = 0.24
			return p
		},
		"cycle": func() *model.ParameterSet {
			// Weak adaptivity decay sustains rotation in the phase plane.
			p := model.NewBaseline()
			p.GammaA = 0.05
			p.BetaA = 1.1
			p.BetaR = 0.6
			return p
		},
		"runaway": func() *model.ParameterSet {
			// No cubic limitation: robustness grows without bound and the
			// trajectory overflows, exercising the non-finite tail.
			p := model.NewBaseline()
			p.GammaR2 = 0
			p.GammaR0 = 1.5
			return p
		},
	},
	model.Saturating: {
		"paper": model.NewSaturating,
		"tight": func() *model.ParameterSet {
			p := model.NewSaturating()
			p.KR = 0.2
			p.KA = 0.2
			return p
		},
		"loose": func() *model.ParameterSet {
			p := model.NewSaturating()
			p.KR = 10
			p.KA = 10
			return p
		},
	},
}

// GetPreset returns a fresh copy of a named preset, or nil if the
// variant has no preset of that name.
func GetPreset(variant model.Variant, name string) *model.ParameterSet {
	variantPresets, ok := presets[variant]
	if !ok {
		return nil
	}
	build, ok := variantPresets[name]
	if !ok {
		return nil
	}
	return build()
}

// ListPresets returns the preset names for a variant in stable order.
func ListPresets(variant model.Variant) []string {
	variantPresets, ok := presets[variant]
	if !ok {
		return nil
	}
	order := []string{"paper", "sliders", "reference", "cycle", "runaway", "tight", "loose"}
	names := make([]string, 0, len(variantPresets))
	for _, name := range order {
		if _, ok := variantPresets[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
