// Package force provides acceleration fields for propagation.
//
// Each field implements the [Field] interface, mapping instantaneous
// position and time to an acceleration:
//
//   - [Zero]: free drift, no acceleration
//   - [Uniform]: constant acceleration
//   - [Hooke]: linear restoring spring
//   - [Sine]: sinusoidal driving term
//   - [Pendulum]: gravitational pendulum in angle coordinates
//   - [DoubleWell]: bistable quartic potential
//
// A field plugs into the propagator as a method value:
//
//	fld := force.Hooke{K: 1}
//	res, err := motion.Propagate(fld.Accel, p)
//
// Fields take no velocity argument, so dissipative terms cannot be
// expressed.
//
// # Energy
//
// Fields derived from a potential also implement [Conservative], which
// evaluates total energy per unit mass for drift monitoring:
//
//	if c, ok := fld.(force.Conservative); ok {
//	    e0 := c.Energy(x0, v0)
//	}
package force
