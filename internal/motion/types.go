package motion

import "math"

// Force maps instantaneous position and time to an acceleration. It must be
// pure: the propagator calls it exactly once per step, with the state as it
// stood at the start of that step, and never inspects its output.
type Force func(x, t float64) float64

// Observer receives the state as it stands before each step is applied.
// Observers must not assume they see the terminal state; they never do.
type Observer interface {
	OnStep(t, x, v float64)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(t, x, v float64)

func (f ObserverFunc) OnStep(t, x, v float64) { f(t, x, v) }

// Metric accumulates a scalar summary over the pre-step samples of a run.
// The propagator resets registered metrics at the start of each run.
type Metric interface {
	Name() string
	Observe(t, x, v float64)
	Value() float64
	Reset()
}

// Params configures a single propagation run.
type Params struct {
	TMax float64 // horizon, must be positive
	H    float64 // step size, must be positive
	X0   float64 // initial position
	V0   float64 // initial velocity
}

// traceCap sizes a recorder for about one sample per step. Past a million
// entries the hint is capped and append growth takes over.
func (p Params) traceCap() int {
	if p.TMax <= 0 || p.H <= 0 {
		return 0
	}
	n := p.TMax / p.H
	if n >= 1<<20 {
		return 1 << 20
	}
	return int(n) + 1
}

// Result is the terminal state of a run: the state at the first t >= TMax,
// together with the number of steps it took to get there.
type Result struct {
	X     float64
	V     float64
	Steps int
}

// IsFinite reports whether the terminal state is free of NaN and Inf. The
// propagator itself never checks; a force producing non-finite values flows
// through undetected and classification is left to the caller.
func (r Result) IsFinite() bool {
	return !math.IsNaN(r.X) && !math.IsInf(r.X, 0) &&
		!math.IsNaN(r.V) && !math.IsInf(r.V, 0)
}

// Trace holds the sampled series of a run: three parallel slices with one
// entry per step, each taken before the step it precedes was applied. The
// terminal state is not part of the trace. Callers own a returned trace;
// nothing mutates it after Run returns.
type Trace struct {
	Times      []float64
	Positions  []float64
	Velocities []float64
}

// Len returns the number of recorded samples.
func (tr *Trace) Len() int { return len(tr.Times) }

// IsFinite reports whether every recorded sample is free of NaN and Inf.
func (tr *Trace) IsFinite() bool {
	for i := range tr.Times {
		if math.IsNaN(tr.Positions[i]) || math.IsInf(tr.Positions[i], 0) {
			return false
		}
		if math.IsNaN(tr.Velocities[i]) || math.IsInf(tr.Velocities[i], 0) {
			return false
		}
	}
	return true
}

// Recorder is an Observer that accumulates a Trace.
type Recorder struct {
	trace Trace
}

// NewRecorder returns a recorder with room for capacity samples.
func NewRecorder(capacity int) *Recorder {
	if capacity < 0 {
		capacity = 0
	}
	return &Recorder{trace: Trace{
		Times:      make([]float64, 0, capacity),
		Positions:  make([]float64, 0, capacity),
		Velocities: make([]float64, 0, capacity),
	}}
}

func (r *Recorder) OnStep(t, x, v float64) {
	r.trace.Times = append(r.trace.Times, t)
	r.trace.Positions = append(r.trace.Positions, x)
	r.trace.Velocities = append(r.trace.Velocities, v)
}

// Trace returns the samples collected so far.
func (r *Recorder) Trace() *Trace { return &r.trace }
