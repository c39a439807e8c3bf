package metrics

import (
	"math"
	"testing"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/motion"
)

func TestEnergyDriftConstantEnergy(t *testing.T) {
	fld := force.Hooke{K: 1}
	m := NewEnergyDrift(fld.Energy)

	// Samples on a circle in phase space all carry the same energy.
	m.Observe(0, 1.0, 0.0)
	m.Observe(1, 0.0, 1.0)
	m.Observe(2, -1.0, 0.0)

	if m.Value() != 0 {
		t.Errorf("expected zero drift on constant energy, got %v", m.Value())
	}
}

func TestEnergyDriftDetectsGrowth(t *testing.T) {
	fld := force.Hooke{K: 1}
	m := NewEnergyDrift(fld.Energy)

	m.Observe(0, 1.0, 0.0) // E = 0.5
	m.Observe(1, 2.0, 0.0) // E = 2.0

	want := (2.0 - 0.5) / 0.5
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected drift %v, got %v", want, m.Value())
	}
}

func TestEnergyDriftReset(t *testing.T) {
	fld := force.Hooke{K: 1}
	m := NewEnergyDrift(fld.Energy)

	m.Observe(0, 1.0, 0.0)
	m.Observe(1, 2.0, 0.0)
	if m.Value() == 0 {
		t.Fatal("expected non-zero drift before reset")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected zero drift after reset, got %v", m.Value())
	}

	// After reset the next sample becomes the new baseline.
	m.Observe(0, 2.0, 0.0)
	if m.Value() != 0 {
		t.Errorf("expected fresh baseline after reset, got drift %v", m.Value())
	}
}

func TestEnergyDriftBoundedOverRun(t *testing.T) {
	fld := force.Hooke{K: 1}
	m := NewEnergyDrift(fld.Energy)

	prop := motion.New(fld.Accel)
	prop.AddMetric(m)

	_, err := prop.Run(motion.Params{TMax: 100, H: 1e-2, X0: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Semi-implicit Euler keeps the oscillator's energy error O(h) over
	// arbitrarily many periods.
	if m.Value() > 0.05 {
		t.Errorf("energy drift %v over 100s run, expected bounded near h", m.Value())
	}
}

func TestExtremes(t *testing.T) {
	m := NewExtremes()

	m.Observe(0, 1.0, -3.0)
	m.Observe(1, -2.5, 0.5)

	if m.Value() != 2.5 {
		t.Errorf("expected peak |x| = 2.5, got %v", m.Value())
	}
	if m.PeakSpeed() != 3.0 {
		t.Errorf("expected peak |v| = 3.0, got %v", m.PeakSpeed())
	}

	m.Reset()
	if m.Value() != 0 || m.PeakSpeed() != 0 {
		t.Error("expected zero extremes after reset")
	}
}

func TestBounded(t *testing.T) {
	m := NewBounded(1.0)

	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 with no samples, got %v", m.Value())
	}

	m.Observe(0, 0.5, 0)
	m.Observe(1, 1.5, 0)
	m.Observe(2, -0.2, 0)
	m.Observe(3, -4.0, 0)

	if m.Value() != 0.5 {
		t.Errorf("expected half the samples in bounds, got %v", m.Value())
	}
}
