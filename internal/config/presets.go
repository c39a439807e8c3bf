package config

var Presets = map[string]map[string]*Config{
	"harmonic": {
		"period": {
			Force: ForceConfig{Kind: "hooke", Params: map[string]float64{"k": 1}},
			TMax:  6.2832, H: 1e-4, X0: 1.0,
		},
		"stiff": {
			Force: ForceConfig{Kind: "hooke", Params: map[string]float64{"k": 100}},
			TMax:  10.0, H: 1e-4, X0: 0.5,
		},
	},
	"pendulum": {
		"small": {
			Force: ForceConfig{Kind: "pendulum"},
			TMax:  20.0, H: 1e-3, X0: 0.2,
		},
		"large": {
			Force: ForceConfig{Kind: "pendulum"},
			TMax:  20.0, H: 1e-3, X0: 2.5,
		},
		"spinning": {
			Force: ForceConfig{Kind: "pendulum"},
			TMax:  30.0, H: 1e-3, X0: 0.1, V0: 8.0,
		},
	},
	"doublewell": {
		"trapped": {
			Force: ForceConfig{Kind: "doublewell"},
			TMax:  20.0, H: 1e-3, X0: 1.1,
		},
		"escape": {
			Force: ForceConfig{Kind: "doublewell"},
			TMax:  20.0, H: 1e-3, X0: 1.1, V0: 1.5,
		},
	},
	"driven": {
		"gentle": {
			Force: ForceConfig{Kind: "sine", Params: map[string]float64{"amp": 0.5, "omega": 1}},
			TMax:  30.0, H: 1e-3,
		},
		"strong": {
			Force: ForceConfig{Kind: "sine", Params: map[string]float64{"amp": 2, "omega": 3}},
			TMax:  30.0, H: 1e-3,
		},
	},
}

func GetPreset(family, name string) *Config {
	group, ok := Presets[family]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(family string) []string {
	group, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
