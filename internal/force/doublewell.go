package force

// DoubleWell models a particle in a bistable quartic potential
// V(x) = A*(x^2 - B)^2, with minima at x = +/- sqrt(B).
type DoubleWell struct {
	A, B float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{1.0, 1.0}
}

func (d *DoubleWell) Accel(x, t float64) float64 {
	return -4 * d.A * x * (x*x - d.B)
}

func (d *DoubleWell) Energy(x, v float64) float64 {
	q := x*x - d.B
	return 0.5*v*v + d.A*q*q
}
