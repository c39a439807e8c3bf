package force

import "fmt"

// Field maps instantaneous position and time to an acceleration.
type Field interface {
	Accel(x, t float64) float64
}

// Conservative is a field derived from a potential. Energy returns the total
// mechanical energy per unit mass at the given state.
type Conservative interface {
	Field
	Energy(x, v float64) float64
}

// Sum superimposes fields, accumulating their accelerations.
type Sum []Field

func (s Sum) Accel(x, t float64) float64 {
	a := 0.0
	for _, f := range s {
		a += f.Accel(x, t)
	}
	return a
}

// Build constructs a field by kind name, applying params on top of the
// kind's defaults. Unknown kinds and unknown parameter names are errors.
func Build(kind string, params map[string]float64) (Field, error) {
	get := func(name string, def float64) float64 {
		if v, ok := params[name]; ok {
			return v
		}
		return def
	}

	known := func(names ...string) error {
		for p := range params {
			ok := false
			for _, n := range names {
				if p == n {
					ok = true
					break
				}
			}
			if !ok {
				return fmt.Errorf("unknown param %q for force %q", p, kind)
			}
		}
		return nil
	}

	switch kind {
	case "zero", "":
		if err := known(); err != nil {
			return nil, err
		}
		return Zero{}, nil
	case "uniform":
		if err := known("a"); err != nil {
			return nil, err
		}
		return Uniform{A: get("a", 1.0)}, nil
	case "hooke":
		if err := known("k"); err != nil {
			return nil, err
		}
		return Hooke{K: get("k", 1.0)}, nil
	case "sine":
		if err := known("amp", "omega"); err != nil {
			return nil, err
		}
		return Sine{Amp: get("amp", 1.0), Omega: get("omega", 1.0)}, nil
	case "pendulum":
		if err := known("gravity", "length"); err != nil {
			return nil, err
		}
		p := NewPendulum()
		p.Gravity = get("gravity", p.Gravity)
		p.Length = get("length", p.Length)
		return p, nil
	case "doublewell":
		if err := known("a", "b"); err != nil {
			return nil, err
		}
		d := NewDoubleWell()
		d.A = get("a", d.A)
		d.B = get("b", d.B)
		return d, nil
	default:
		return nil, fmt.Errorf("unknown force kind: %s", kind)
	}
}

// Kinds lists the names Build accepts, for help text and validation.
func Kinds() []string {
	return []string{"zero", "uniform", "hooke", "sine", "pendulum", "doublewell"}
}
