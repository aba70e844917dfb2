package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
)

// Config is the yaml-facing run description. Zero fields fall back to
// the dashboard defaults; Params overrides individual physical
// parameters on top of the chosen preset.
type Config struct {
	Variant  string             `yaml:"variant"`
	Stepper  string             `yaml:"stepper"`
	Preset   string             `yaml:"preset"`
	TMax     float64            `yaml:"t_max"`
	StepSize float64            `yaml:"step_size"`
	Params   map[string]float64 `yaml:"params"`
	Initial  InitialConfig      `yaml:"initial"`
}

// InitialConfig optionally overrides the fixed initial condition.
type InitialConfig struct {
	Robustness *float64 `yaml:"robustness"`
	Adaptivity *float64 `yaml:"adaptivity"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant: "baseline",
		Stepper: "euler",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build resolves the config into a concrete ParameterSet and initial
// state: variant first, then preset, then field-by-field overrides.
func (c *Config) Build() (*model.ParameterSet, model.State, error) {
	variant, err := model.ParseVariant(c.Variant)
	if err != nil {
		return nil, model.State{}, err
	}

	var p *model.ParameterSet
	if c.Preset != "" {
		p = GetPreset(variant, c.Preset)
		if p == nil {
			return nil, model.State{}, fmt.Errorf("unknown preset %q for variant %s (available: %v)",
				c.Preset, variant, ListPresets(variant))
		}
	} else if variant == model.Saturating {
		p = model.NewSaturating()
	} else {
		p = model.NewBaseline()
	}

	if c.TMax != 0 {
		p.TMax = c.TMax
	}
	if c.StepSize != 0 {
		p.StepSize = c.StepSize
	}
	for name, value := range c.Params {
		if err := p.Set(name, value); err != nil {
			return nil, model.State{}, err
		}
	}

	initial := model.InitialState()
	if c.Initial.Robustness != nil {
		initial.R = *c.Initial.Robustness
	}
	if c.Initial.Adaptivity != nil {
		initial.A = *c.Initial.Adaptivity
	}

	return p, initial, nil
}
