package motion

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
		wantMsg string
	}{
		{"valid", Params{TMax: 1, H: 0.01}, false, ""},
		{"zero tmax", Params{TMax: 0, H: 0.01}, true, "tmax must be positive"},
		{"negative tmax", Params{TMax: -1, H: 0.01}, true, "tmax must be positive"},
		{"zero h", Params{TMax: 1, H: 0}, true, "h must be positive"},
		{"negative h", Params{TMax: 1, H: -0.5}, true, "h must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestPropagateRejectsInvalid(t *testing.T) {
	calls := 0
	f := func(x, t float64) float64 {
		calls++
		return 0
	}

	tests := []struct {
		name   string
		params Params
	}{
		{"zero tmax", Params{TMax: 0, H: 0.01, X0: 1, V0: 2}},
		{"negative h", Params{TMax: 1, H: -0.01, X0: 1, V0: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Propagate(f, tt.params)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if res != (Result{}) {
				t.Errorf("expected zero result on error, got %+v", res)
			}
			if calls != 0 {
				t.Errorf("force evaluated %d times before validation failure", calls)
			}

			_, trace, err := PropagateTrace(f, tt.params)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter from trace run, got %v", err)
			}
			if trace != nil {
				t.Errorf("expected nil trace on error, got %d samples", trace.Len())
			}
		})
	}
}

// With zero force the velocity update adds exactly 0.0 each step, so the
// initial velocity must survive bit for bit.
func TestPropagateUniformMotion(t *testing.T) {
	zero := func(x, t float64) float64 { return 0 }
	p := Params{TMax: 1.0, H: 1e-3, X0: 0, V0: 1.0}

	res, err := Propagate(zero, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.V != 1.0 {
		t.Errorf("velocity changed under zero force: got %v, want exactly 1.0", res.V)
	}

	want := p.X0 + p.V0*p.TMax
	if rel := math.Abs(res.X-want) / math.Abs(want); rel > 1e-10 {
		t.Errorf("position relative error %g exceeds 1e-10 (got %v, want %v)", rel, res.X, want)
	}
}

func TestPropagateConstantForce(t *testing.T) {
	const c = 1.0
	f := func(x, t float64) float64 { return c }
	p := Params{TMax: 1.0, H: 1e-4}

	res, err := Propagate(f, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantV := c * p.TMax
	wantX := 0.5 * c * p.TMax * p.TMax
	if rel := math.Abs(res.V-wantV) / wantV; rel > 1e-3 {
		t.Errorf("velocity relative error %g exceeds 1e-3 (got %v, want %v)", rel, res.V, wantV)
	}
	if rel := math.Abs(res.X-wantX) / wantX; rel > 1e-3 {
		t.Errorf("position relative error %g exceeds 1e-3 (got %v, want %v)", rel, res.X, wantX)
	}
}

// One full period of x'' = -x starting at (1, 0) should come back to (1, 0).
func TestPropagateHarmonic(t *testing.T) {
	hooke := func(x, t float64) float64 { return -x }
	p := Params{TMax: 2 * math.Pi, H: 1e-4, X0: 1, V0: 0}

	res, err := Propagate(hooke, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.X-1.0) > 1e-2 {
		t.Errorf("position after one period: got %v, want 1.0 within 1e-2", res.X)
	}
	if math.Abs(res.V) > 1e-2 {
		t.Errorf("velocity after one period: got %v, want 0 within 1e-2", res.V)
	}
}

func TestPropagateDrivenFinite(t *testing.T) {
	driven := func(x, t float64) float64 { return math.Sin(t) }
	p := Params{TMax: 10, H: 1e-3}

	res, err := Propagate(driven, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsFinite() {
		t.Errorf("driven run produced non-finite state: %+v", res)
	}
}

// A single step of x'' = -x from (1, 0) with h = 0.5 lands on exactly
// (0.75, -0.5): the position update must see the already-updated velocity.
// The explicit variant would leave x at 1.0.
func TestStepUpdateOrder(t *testing.T) {
	hooke := func(x, t float64) float64 { return -x }

	x, v := Step(hooke, 1.0, 0.0, 0.0, 0.5)
	if v != -0.5 {
		t.Errorf("velocity after one step: got %v, want exactly -0.5", v)
	}
	if x != 0.75 {
		t.Errorf("position after one step: got %v, want exactly 0.75", x)
	}

	res, err := Propagate(hooke, Params{TMax: 0.4, H: 0.5, X0: 1, V0: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Steps != 1 {
		t.Fatalf("expected a single step, got %d", res.Steps)
	}
	if res.X != 0.75 || res.V != -0.5 {
		t.Errorf("single-step run: got (%v, %v), want (0.75, -0.5)", res.X, res.V)
	}
}

func TestForceSeesPreStepState(t *testing.T) {
	var gotX, gotT []float64
	f := func(x, t float64) float64 {
		gotX = append(gotX, x)
		gotT = append(gotT, t)
		return -x
	}

	p := Params{TMax: 1.0, H: 0.125, X0: 2, V0: -1}
	res, trace, err := PropagateTrace(f, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotX) != res.Steps {
		t.Fatalf("force evaluated %d times over %d steps", len(gotX), res.Steps)
	}
	for i := range gotX {
		if gotX[i] != trace.Positions[i] {
			t.Errorf("step %d: force saw x = %v, trace recorded %v", i, gotX[i], trace.Positions[i])
		}
		if gotT[i] != trace.Times[i] {
			t.Errorf("step %d: force saw t = %v, trace recorded %v", i, gotT[i], trace.Times[i])
		}
	}
}

// The trace holds one pre-step sample per iteration and never the terminal
// state: replaying the last sample through Step must reproduce the result.
func TestTraceMatchesSteps(t *testing.T) {
	hooke := func(x, t float64) float64 { return -x }
	p := Params{TMax: 1.0, H: 0.1, X0: 1, V0: 0}

	res, trace, err := PropagateTrace(hooke, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := trace.Len()
	if n != res.Steps {
		t.Fatalf("trace has %d samples, run took %d steps", n, res.Steps)
	}
	if len(trace.Positions) != n || len(trace.Velocities) != n {
		t.Fatalf("trace slices disagree: %d times, %d positions, %d velocities",
			n, len(trace.Positions), len(trace.Velocities))
	}

	if trace.Times[0] != 0 || trace.Positions[0] != p.X0 || trace.Velocities[0] != p.V0 {
		t.Errorf("first sample: got (%v, %v, %v), want (0, %v, %v)",
			trace.Times[0], trace.Positions[0], trace.Velocities[0], p.X0, p.V0)
	}
	for i := 1; i < n; i++ {
		if trace.Times[i] <= trace.Times[i-1] {
			t.Fatalf("times not strictly increasing at %d: %v then %v", i, trace.Times[i-1], trace.Times[i])
		}
	}

	lastT := trace.Times[n-1]
	if lastT >= p.TMax {
		t.Errorf("trace contains a sample at t = %v past the horizon %v", lastT, p.TMax)
	}
	x, v := Step(hooke, trace.Positions[n-1], trace.Velocities[n-1], lastT, p.H)
	if x != res.X || v != res.V {
		t.Errorf("last sample advanced one step gives (%v, %v), result is (%v, %v)", x, v, res.X, res.V)
	}
}

// Both presentations drive the same loop, so step counts and terminal states
// must agree exactly, including for horizons that are not a multiple of h.
func TestPresentationsAgree(t *testing.T) {
	hooke := func(x, t float64) float64 { return -x }

	tests := []struct {
		name   string
		params Params
	}{
		{"even divide", Params{TMax: 1.0, H: 1e-3, X0: 1}},
		{"ragged divide", Params{TMax: 1.0, H: 0.3, X0: 1}},
		{"horizon below step", Params{TMax: 0.5, H: 1.0, X0: 1}},
		{"full period", Params{TMax: 2 * math.Pi, H: 1e-2, X0: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, err := Propagate(hooke, tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			traced, trace, err := PropagateTrace(hooke, tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if plain.Steps != traced.Steps {
				t.Errorf("step counts diverge: %d without trace, %d with", plain.Steps, traced.Steps)
			}
			if plain.X != traced.X || plain.V != traced.V {
				t.Errorf("terminal states diverge: (%v, %v) vs (%v, %v)",
					plain.X, plain.V, traced.X, traced.V)
			}
			if trace.Len() != traced.Steps {
				t.Errorf("trace has %d samples, run took %d steps", trace.Len(), traced.Steps)
			}
		})
	}
}

func TestObserverDoesNotPerturbRun(t *testing.T) {
	hooke := func(x, t float64) float64 { return -x }
	p := Params{TMax: 2.0, H: 1e-2, X0: 1, V0: 0.5}

	bare, err := Propagate(hooke, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := 0
	prop := New(hooke)
	prop.AddObserver(ObserverFunc(func(t, x, v float64) { seen++ }))
	watched, err := prop.Run(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if watched != bare {
		t.Errorf("observer changed the run: %+v vs %+v", watched, bare)
	}
	if seen != bare.Steps {
		t.Errorf("observer called %d times over %d steps", seen, bare.Steps)
	}
}

type countingMetric struct {
	resets   int
	observed int
}

func (m *countingMetric) Name() string            { return "count" }
func (m *countingMetric) Observe(t, x, v float64) { m.observed++ }
func (m *countingMetric) Value() float64          { return float64(m.observed) }

func (m *countingMetric) Reset() {
	m.resets++
	m.observed = 0
}

func TestMetricResetPerRun(t *testing.T) {
	zero := func(x, t float64) float64 { return 0 }
	p := Params{TMax: 1.0, H: 0.25}

	m := &countingMetric{}
	prop := New(zero)
	prop.AddMetric(m)

	res, err := prop.Run(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.observed != res.Steps {
		t.Errorf("metric observed %d samples over %d steps", m.observed, res.Steps)
	}

	if _, err := prop.Run(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.resets != 2 {
		t.Errorf("expected 2 resets across 2 runs, got %d", m.resets)
	}
	if m.observed != res.Steps {
		t.Errorf("second run accumulated on top of the first: %d observations", m.observed)
	}
}
