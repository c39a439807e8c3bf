package metrics

import "math"

// Extremes tracks the peak position and speed magnitudes over a run. Value
// reports the peak |x|; PeakSpeed is available separately.
type Extremes struct {
	name    string
	maxAbsX float64
	maxAbsV float64
	samples int
}

func NewExtremes() *Extremes {
	return &Extremes{name: "extremes"}
}

func (e *Extremes) Name() string { return e.name }

func (e *Extremes) Observe(t, x, v float64) {
	e.samples++
	e.maxAbsX = math.Max(e.maxAbsX, math.Abs(x))
	e.maxAbsV = math.Max(e.maxAbsV, math.Abs(v))
}

func (e *Extremes) Value() float64 { return e.maxAbsX }

// PeakSpeed returns the largest |v| observed.
func (e *Extremes) PeakSpeed() float64 { return e.maxAbsV }

func (e *Extremes) Reset() {
	e.maxAbsX = 0
	e.maxAbsV = 0
	e.samples = 0
}

// Bounded reports the fraction of samples whose position stayed within a
// threshold magnitude.
type Bounded struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewBounded(threshold float64) *Bounded {
	return &Bounded{
		name:      "bounded",
		threshold: threshold,
	}
}

func (b *Bounded) Name() string { return b.name }

func (b *Bounded) Observe(t, x, v float64) {
	b.samples++
	if math.Abs(x) > b.threshold {
		b.violations++
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}
