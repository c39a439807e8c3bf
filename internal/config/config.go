// Package config loads and saves run configurations as YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/motion"
)

const (
	DefaultTMax = 10.0
	DefaultH    = 1e-3
)

type Config struct {
	Scenario string      `yaml:"scenario,omitempty"`
	Force    ForceConfig `yaml:"force"`
	TMax     float64     `yaml:"tmax"`
	H        float64     `yaml:"h"`
	X0       float64     `yaml:"x0"`
	V0       float64     `yaml:"v0"`
}

type ForceConfig struct {
	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Force: ForceConfig{Kind: "hooke"},
		TMax:  DefaultTMax,
		H:     DefaultH,
		X0:    1.0,
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

// Params assembles the propagation parameters.
func (c *Config) Params() motion.Params {
	return motion.Params{TMax: c.TMax, H: c.H, X0: c.X0, V0: c.V0}
}

// Field builds the configured force field.
func (c *Config) Field() (force.Field, error) {
	return force.Build(c.Force.Kind, c.Force.Params)
}
