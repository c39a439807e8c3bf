package motion

import "fmt"

// Validate checks the run invariants. It fails before any state exists, so a
// run with invalid parameters performs no work at all.
func (p Params) Validate() error {
	if p.TMax <= 0 {
		return fmt.Errorf("%w: tmax must be positive, got %g", ErrInvalidParameter, p.TMax)
	}
	if p.H <= 0 {
		return fmt.Errorf("%w: h must be positive, got %g", ErrInvalidParameter, p.H)
	}
	return nil
}

// Step advances (x, v) by one semi-implicit Euler increment of size h. The
// velocity update sees the pre-step position and time; the position update
// uses the freshly updated velocity. The update order is the symplectic part
// and must not be swapped.
func Step(f Force, x, v, t, h float64) (float64, float64) {
	v += h * f(x, t)
	x += h * v
	return x, v
}

// Propagator runs fixed-step propagations of a force, notifying registered
// observers and metrics with the pre-step state once per iteration.
type Propagator struct {
	force     Force
	observers []Observer
	metrics   []Metric
}

func New(f Force) *Propagator {
	return &Propagator{force: f}
}

func (p *Propagator) AddObserver(o Observer) { p.observers = append(p.observers, o) }
func (p *Propagator) AddMetric(m Metric)     { p.metrics = append(p.metrics, m) }

// Run propagates from (X0, V0) at t = 0 until the accumulated time reaches
// TMax, and returns the state after the last completed step.
//
// Time advances by repeated addition of H rather than steps*H, so sample
// times drift by at most one ulp per step; the loop bound is t < TMax and
// nothing else. The force is evaluated exactly once per iteration.
func (p *Propagator) Run(prm Params) (Result, error) {
	if err := prm.Validate(); err != nil {
		return Result{}, err
	}

	for _, m := range p.metrics {
		m.Reset()
	}

	x, v, t := prm.X0, prm.V0, 0.0
	steps := 0

	for t < prm.TMax {
		for _, o := range p.observers {
			o.OnStep(t, x, v)
		}
		for _, m := range p.metrics {
			m.Observe(t, x, v)
		}

		x, v = Step(p.force, x, v, t, prm.H)
		t += prm.H
		steps++
	}

	return Result{X: x, V: v, Steps: steps}, nil
}

// Propagate is the final-state-only presentation: it runs without observers
// and returns just the terminal state.
func Propagate(f Force, p Params) (Result, error) {
	return New(f).Run(p)
}

// PropagateTrace is the tracing presentation: a Recorder captures the
// (t, x, v) triple before every step. Stepping is identical to Propagate;
// the recorder only watches.
func PropagateTrace(f Force, p Params) (Result, *Trace, error) {
	rec := NewRecorder(p.traceCap())
	prop := New(f)
	prop.AddObserver(rec)

	res, err := prop.Run(p)
	if err != nil {
		return Result{}, nil, err
	}
	return res, rec.Trace(), nil
}
