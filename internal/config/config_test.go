package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Force.Kind != "hooke" {
		t.Errorf("expected force kind hooke, got %s", cfg.Force.Kind)
	}
	if cfg.H <= 0 {
		t.Error("h should be positive")
	}
	if cfg.TMax <= 0 {
		t.Error("tmax should be positive")
	}
	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "harmonic"
	cfg.TMax = 42.0
	cfg.Force.Params = map[string]float64{"k": 4}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scenario != "harmonic" {
		t.Errorf("expected scenario harmonic, got %s", loaded.Scenario)
	}
	if loaded.TMax != 42.0 {
		t.Errorf("expected tmax 42, got %v", loaded.TMax)
	}
	if loaded.Force.Params["k"] != 4 {
		t.Errorf("expected k = 4, got %v", loaded.Force.Params["k"])
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	if err := os.WriteFile(path, []byte("x0: 2.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.X0 != 2.0 {
		t.Errorf("expected x0 = 2, got %v", cfg.X0)
	}
	if cfg.H != DefaultH {
		t.Errorf("expected default h, got %v", cfg.H)
	}
	if cfg.TMax != DefaultTMax {
		t.Errorf("expected default tmax, got %v", cfg.TMax)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/run.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("tmax: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestFieldFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Force = ForceConfig{Kind: "uniform", Params: map[string]float64{"a": -2}}

	fld, err := cfg.Field()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fld.Accel(0, 0); got != -2 {
		t.Errorf("expected -2, got %v", got)
	}

	cfg.Force.Kind = "warp"
	if _, err := cfg.Field(); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.X0 != 0.2 {
		t.Errorf("expected x0 = 0.2, got %v", cfg.X0)
	}
	if err := cfg.Params().Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("pendulum", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "small"); cfg != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestListPresets(t *testing.T) {
	if names := ListPresets("doublewell"); len(names) == 0 {
		t.Error("expected presets for doublewell")
	}
	if names := ListPresets("nonexistent"); names != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestAllPresetsBuild(t *testing.T) {
	for family, group := range Presets {
		for name, cfg := range group {
			if err := cfg.Params().Validate(); err != nil {
				t.Errorf("preset %s/%s: invalid params: %v", family, name, err)
			}
			if _, err := cfg.Field(); err != nil {
				t.Errorf("preset %s/%s: bad force: %v", family, name, err)
			}
		}
	}
}
