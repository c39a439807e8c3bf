package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is a scripted sequence of runs loaded from YAML. Each entry names
// either a builtin scenario or a force, plus optional overrides; overrides
// are pointers so an absent key and an explicit zero stay distinguishable.
type Plan struct {
	Name  string    `yaml:"name"`
	About string    `yaml:"about,omitempty"`
	Runs  []PlanRun `yaml:"runs"`
}

type PlanRun struct {
	Scenario string       `yaml:"scenario,omitempty"`
	Force    *ForceConfig `yaml:"force,omitempty"`
	TMax     *float64     `yaml:"tmax,omitempty"`
	H        *float64     `yaml:"h,omitempty"`
	X0       *float64     `yaml:"x0,omitempty"`
	V0       *float64     `yaml:"v0,omitempty"`
	SaveAs   string       `yaml:"save_as,omitempty"`
}

// LoadPlan reads and validates a plan file. Every run must name a scenario
// or a force; the rest is optional.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}

	if len(plan.Runs) == 0 {
		return nil, fmt.Errorf("plan %s has no runs", path)
	}
	for i, run := range plan.Runs {
		if run.Scenario == "" && (run.Force == nil || run.Force.Kind == "") {
			return nil, fmt.Errorf("plan run %d names neither a scenario nor a force", i+1)
		}
	}

	return &plan, nil
}

// Apply overlays the run's overrides onto a base config and returns the
// result. The base is not modified.
func (r PlanRun) Apply(base *Config) *Config {
	cfg := *base
	if r.Scenario != "" {
		cfg.Scenario = r.Scenario
	}
	if r.Force != nil {
		cfg.Force = *r.Force
	}
	if r.TMax != nil {
		cfg.TMax = *r.TMax
	}
	if r.H != nil {
		cfg.H = *r.H
	}
	if r.X0 != nil {
		cfg.X0 = *r.X0
	}
	if r.V0 != nil {
		cfg.V0 = *r.V0
	}
	return &cfg
}
