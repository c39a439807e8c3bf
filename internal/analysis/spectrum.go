package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the single-sided amplitude spectrum of a uniformly
// sampled series, with the frequency axis in cycles per time unit. The
// supplied dt is the sample spacing.
func Spectrum(xs []float64, dt float64) (freqs, amps []float64, err error) {
	if len(xs) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 samples, got %d", len(xs))
	}
	if dt <= 0 {
		return nil, nil, fmt.Errorf("sample spacing must be positive, got %g", dt)
	}

	coeffs := fft.FFTReal(xs)
	n := len(xs)
	half := n/2 + 1

	freqs = make([]float64, half)
	amps = make([]float64, half)
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		amps[k] = cmplx.Abs(coeffs[k]) / float64(n)
	}

	return freqs, amps, nil
}

// DominantFrequency returns the frequency of the strongest non-DC component.
func DominantFrequency(xs []float64, dt float64) (float64, error) {
	freqs, amps, err := Spectrum(xs, dt)
	if err != nil {
		return 0, err
	}
	if len(amps) < 2 {
		return 0, fmt.Errorf("series too short for a spectral peak")
	}

	best := 1
	for k := 2; k < len(amps); k++ {
		if amps[k] > amps[best] {
			best = k
		}
	}
	return freqs[best], nil
}
