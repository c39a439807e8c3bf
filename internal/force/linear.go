package force

import "math"

// Zero is the free particle: no acceleration anywhere.
type Zero struct{}

func (Zero) Accel(x, t float64) float64  { return 0 }
func (Zero) Energy(x, v float64) float64 { return 0.5 * v * v }

// Uniform applies a constant acceleration A.
type Uniform struct {
	A float64
}

func (u Uniform) Accel(x, t float64) float64  { return u.A }
func (u Uniform) Energy(x, v float64) float64 { return 0.5*v*v - u.A*x }

// Hooke is the linear restoring spring a = -K*x. With K = 1 the motion has
// unit angular frequency and period 2*pi.
type Hooke struct {
	K float64
}

func (h Hooke) Accel(x, t float64) float64  { return -h.K * x }
func (h Hooke) Energy(x, v float64) float64 { return 0.5*v*v + 0.5*h.K*x*x }

// Sine drives with a = Amp*sin(Omega*t), independent of position.
type Sine struct {
	Amp   float64
	Omega float64
}

func (s Sine) Accel(x, t float64) float64 { return s.Amp * math.Sin(s.Omega*t) }
