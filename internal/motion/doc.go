// Package motion propagates one-dimensional second-order systems
//
//	v'(t) = F(x(t), t)
//	x'(t) = v(t)
//
// forward in time with the semi-implicit (symplectic) Euler method at a
// fixed step size. The package defines the fundamental types:
//
//   - [Force]: caller-supplied acceleration law F(x, t)
//   - [Params]: horizon, step size and initial conditions of a run
//   - [Propagator]: executes the stepping loop
//   - [Observer]: receives the pre-step state once per iteration
//   - [Recorder]: an Observer that accumulates a [Trace]
//
// # Example
//
//	hooke := func(x, t float64) float64 { return -4 * x }
//	res, trace, _ := motion.PropagateTrace(hooke, motion.Params{
//		TMax: 10, H: 1e-3, X0: 1,
//	})
//
// # Thread Safety
//
// Propagator instances are not safe for concurrent use. Distinct runs share
// no state, so propagating in parallel goroutines needs no coordination;
// [Sweep] does exactly that for a set of step sizes.
package motion
