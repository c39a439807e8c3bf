package force

import "math"

// Pendulum is a gravitational pendulum in angle coordinates: x is the angle
// from the downward vertical, a = -(Gravity/Length)*sin(x).
type Pendulum struct {
	Gravity float64
	Length  float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Gravity: 9.81,
		Length:  1.0,
	}
}

func (p *Pendulum) Accel(x, t float64) float64 {
	return -(p.Gravity / p.Length) * math.Sin(x)
}

func (p *Pendulum) Energy(x, v float64) float64 {
	// KE = 0.5 * (L*v)^2, PE = g * L * (1 - cos(x)), per unit mass.
	w := p.Length * v
	return 0.5*w*w + p.Gravity*p.Length*(1.0-math.Cos(x))
}
