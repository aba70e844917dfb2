package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
)

func TestDefaultConfigBuild(t *testing.T) {
	p, initial, err := DefaultConfig().Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if p.Variant() != model.Baseline {
		t.Errorf("expected baseline variant, got %s", p.Variant())
	}
	if p.TMax != model.DefaultTMax || p.StepSize != model.DefaultStepSize {
		t.Errorf("expected dashboard integration controls, got t_max=%g step=%g", p.TMax, p.StepSize)
	}
	if initial != model.InitialState() {
		t.Errorf("expected fixed initial state, got %+v", initial)
	}
}

func TestBuildAppliesPresetAndOverrides(t *testing.T) {
	cfg := &Config{
		Variant:  "baseline",
		Preset:   "reference",
		TMax:     50,
		Params:   map[string]float64{"q": 0.5},
		Stepper:  "rk4",
		StepSize: 0,
	}

	p, _, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if p.GammaR2 != 2.07 {
		t.Errorf("preset not applied, gamma_r2=%g", p.GammaR2)
	}
	if p.Q != 0.5 {
		t.Errorf("override not applied, q=%g", p.Q)
	}
	if p.TMax != 50 {
		t.Errorf("t_max override not applied, got %g", p.TMax)
	}
	if p.StepSize != model.DefaultStepSize {
		t.Errorf("zero step_size should keep the default, got %g", p.StepSize)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, _, err := (&Config{Variant: "extended"}).Build(); err == nil {
		t.Error("expected error for unknown variant")
	}
	if _, _, err := (&Config{Variant: "baseline", Preset: "nope"}).Build(); err == nil {
		t.Error("expected error for unknown preset")
	}
	cfg := &Config{Variant: "baseline", Params: map[string]float64{"k_r": 1}}
	if _, _, err := cfg.Build(); err == nil {
		t.Error("expected error for saturating key on baseline variant")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset(model.Baseline, "runaway")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.GammaR2 != 0 {
		t.Errorf("expected gamma_r2=0, got %g", p.GammaR2)
	}

	// Each call hands out an independent copy.
	p.GammaR0 = 99
	if GetPreset(model.Baseline, "runaway").GammaR0 == 99 {
		t.Error("presets must not share state between calls")
	}

	if GetPreset(model.Baseline, "tight") != nil {
		t.Error("tight is a saturating preset, baseline lookup should fail")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets(model.Baseline)
	if len(names) == 0 {
		t.Fatal("expected baseline presets")
	}
	if names[0] != "paper" {
		t.Errorf("expected stable order starting with paper, got %v", names)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	r := -0.5
	cfg := &Config{
		Variant:  "saturating",
		Stepper:  "rk4",
		TMax:     25,
		StepSize: 0.05,
		Params:   map[string]float64{"k_a": 0.3},
		Initial:  InitialConfig{Robustness: &r},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Variant != "saturating" || loaded.TMax != 25 || loaded.Params["k_a"] != 0.3 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.Initial.Robustness == nil || *loaded.Initial.Robustness != -0.5 {
		t.Error("initial override lost in round trip")
	}

	p, initial, err := loaded.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if p.KA != 0.3 || initial.R != -0.5 {
		t.Errorf("built values wrong: k_a=%g r=%g", p.KA, initial.R)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
