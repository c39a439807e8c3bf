package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/motion"
)

// Registry maps scenario names to constructors.
type Registry struct {
	scenarios map[string]func() Scenario
}

// NewRegistry returns a registry preloaded with the builtin scenarios.
func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]func() Scenario)}

	r.scenarios["drift"] = func() Scenario {
		return Scenario{
			Name:   "drift",
			About:  "free particle, unit velocity",
			Params: motion.Params{TMax: 1.0, H: 1e-3, X0: 0, V0: 1},
			Field:  force.Zero{},
			Exact:  func(t float64) (float64, float64) { return t, 1 },
			Tol:    1e-9,
		}
	}

	r.scenarios["constant"] = func() Scenario {
		return Scenario{
			Name:   "constant",
			About:  "unit acceleration from rest",
			Params: motion.Params{TMax: 1.0, H: 1e-4},
			Field:  force.Uniform{A: 1},
			Exact:  func(t float64) (float64, float64) { return 0.5 * t * t, t },
			Tol:    1e-3,
		}
	}

	r.scenarios["harmonic"] = func() Scenario {
		return Scenario{
			Name:   "harmonic",
			About:  "unit spring over one period",
			Params: motion.Params{TMax: 2 * math.Pi, H: 1e-4, X0: 1},
			Field:  force.Hooke{K: 1},
			Exact:  func(t float64) (float64, float64) { return math.Cos(t), -math.Sin(t) },
			Tol:    1e-2,
		}
	}

	r.scenarios["driven"] = func() Scenario {
		return Scenario{
			Name:   "driven",
			About:  "sinusoidal drive from rest",
			Params: motion.Params{TMax: 10, H: 1e-3},
			Field:  force.Sine{Amp: 1, Omega: 1},
			Exact:  func(t float64) (float64, float64) { return t - math.Sin(t), 1 - math.Cos(t) },
			Tol:    5e-2,
		}
	}

	r.scenarios["pendulum"] = func() Scenario {
		return Scenario{
			Name:   "pendulum",
			About:  "gravitational pendulum released at 0.5 rad",
			Params: motion.Params{TMax: 10, H: 1e-3, X0: 0.5},
			Field:  force.NewPendulum(),
		}
	}

	r.scenarios["doublewell"] = func() Scenario {
		return Scenario{
			Name:   "doublewell",
			About:  "bistable well, started near a minimum",
			Params: motion.Params{TMax: 20, H: 1e-3, X0: 1.1},
			Field:  force.NewDoubleWell(),
		}
	}

	return r
}

// Get builds the named scenario.
func (r *Registry) Get(name string) (Scenario, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(), nil
}

// Names lists the registered scenarios, sorted for stable output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
