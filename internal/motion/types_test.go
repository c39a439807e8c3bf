package motion

import (
	"math"
	"testing"
)

func TestResultIsFinite(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want bool
	}{
		{"finite", Result{X: 1.5, V: -2.0, Steps: 10}, true},
		{"zero", Result{}, true},
		{"nan position", Result{X: math.NaN(), V: 0}, false},
		{"nan velocity", Result{X: 0, V: math.NaN()}, false},
		{"positive inf", Result{X: math.Inf(1), V: 0}, false},
		{"negative inf", Result{X: 0, V: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTraceIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		trace Trace
		want  bool
	}{
		{"empty", Trace{}, true},
		{
			"finite",
			Trace{Times: []float64{0, 1}, Positions: []float64{1, 2}, Velocities: []float64{0, 1}},
			true,
		},
		{
			"nan position mid-series",
			Trace{Times: []float64{0, 1, 2}, Positions: []float64{1, math.NaN(), 3}, Velocities: []float64{0, 0, 0}},
			false,
		},
		{
			"inf velocity",
			Trace{Times: []float64{0}, Positions: []float64{1}, Velocities: []float64{math.Inf(1)}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trace.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(4)
	rec.OnStep(0, 1.0, 2.0)
	rec.OnStep(0.5, 1.5, 2.5)

	trace := rec.Trace()
	if trace.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", trace.Len())
	}
	if trace.Times[1] != 0.5 || trace.Positions[1] != 1.5 || trace.Velocities[1] != 2.5 {
		t.Errorf("second sample: got (%v, %v, %v)", trace.Times[1], trace.Positions[1], trace.Velocities[1])
	}
}

func TestRecorderNegativeCapacity(t *testing.T) {
	rec := NewRecorder(-1)
	rec.OnStep(0, 0, 0)
	if rec.Trace().Len() != 1 {
		t.Errorf("recorder with clamped capacity dropped a sample")
	}
}

func TestObserverFunc(t *testing.T) {
	var gotT, gotX, gotV float64
	var o Observer = ObserverFunc(func(t, x, v float64) {
		gotT, gotX, gotV = t, x, v
	})

	o.OnStep(1, 2, 3)
	if gotT != 1 || gotX != 2 || gotV != 3 {
		t.Errorf("adapter passed (%v, %v, %v), want (1, 2, 3)", gotT, gotX, gotV)
	}
}

func TestTraceCap(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{"even divide", Params{TMax: 1, H: 0.1}, 11},
		{"invalid", Params{TMax: -1, H: 0.1}, 0},
		{"zero h", Params{TMax: 1, H: 0}, 0},
		{"huge ratio capped", Params{TMax: 1, H: 1e-12}, 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.traceCap(); got != tt.want {
				t.Errorf("traceCap() = %d, want %d", got, tt.want)
			}
		})
	}
}
