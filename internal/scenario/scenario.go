// Package scenario bundles a force field with run parameters and, where one
// exists, the closed-form solution to check the propagator against.
package scenario

import (
	"fmt"
	"math"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/motion"
)

// Scenario is a ready-to-run propagation setup.
type Scenario struct {
	Name   string
	About  string
	Params motion.Params
	Field  force.Field

	// Exact returns the analytic (x, v) at time t. Nil when the system has
	// no closed form; Check then only requires a finite result.
	Exact func(t float64) (x, v float64)

	// Tol bounds |got - exact| at the horizon for both components.
	Tol float64
}

// Run propagates the scenario to its horizon.
func (s Scenario) Run() (motion.Result, error) {
	return motion.Propagate(s.Field.Accel, s.Params)
}

// RunTrace propagates the scenario, recording every pre-step sample.
func (s Scenario) RunTrace() (motion.Result, *motion.Trace, error) {
	return motion.PropagateTrace(s.Field.Accel, s.Params)
}

// Check compares a result against the scenario's exact solution at the
// horizon. Without a closed form it only demands a finite state.
func (s Scenario) Check(res motion.Result) error {
	if !res.IsFinite() {
		return fmt.Errorf("%w: scenario %s", motion.ErrNonFinite, s.Name)
	}
	if s.Exact == nil {
		return nil
	}

	wantX, wantV := s.Exact(s.Params.TMax)
	if d := math.Abs(res.X - wantX); d > s.Tol {
		return fmt.Errorf("scenario %s: position off by %g at t = %g (got %g, want %g, tol %g)",
			s.Name, d, s.Params.TMax, res.X, wantX, s.Tol)
	}
	if d := math.Abs(res.V - wantV); d > s.Tol {
		return fmt.Errorf("scenario %s: velocity off by %g at t = %g (got %g, want %g, tol %g)",
			s.Name, d, s.Params.TMax, res.V, wantV, s.Tol)
	}
	return nil
}
