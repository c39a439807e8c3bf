// Package metrics provides run summaries that attach to a propagator and
// accumulate over the pre-step samples of a run.
package metrics

import "math"

// EnergyDrift tracks the maximum relative deviation of an energy function
// from its value at the first sample.
type EnergyDrift struct {
	name     string
	energy   func(x, v float64) float64
	initial  float64
	maxDrift float64
	samples  int
}

// NewEnergyDrift builds the metric around an energy function, typically the
// Energy method of a conservative field.
func NewEnergyDrift(energy func(x, v float64) float64) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: energy,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(t, x, v float64) {
	en := e.energy(x, v)

	if e.samples == 0 {
		e.initial = en
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(en-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
