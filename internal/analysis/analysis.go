// Package analysis provides post-run measures over recorded traces: error
// norms against closed forms, empirical convergence order, spectra, and
// step-size tuning.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bounds returns the minimum and maximum of a series. Empty input yields
// (0, 0).
func Bounds(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return floats.Min(xs), floats.Max(xs)
}

// MaxAbsError returns the largest |got - want| across the series.
func MaxAbsError(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(got), len(want))
	}
	maxErr := 0.0
	for i := range got {
		maxErr = math.Max(maxErr, math.Abs(got[i]-want[i]))
	}
	return maxErr, nil
}

// RMSE returns the root mean square error between the series.
func RMSE(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("series length mismatch: %d vs %d", len(got), len(want))
	}
	if len(got) == 0 {
		return 0, nil
	}
	sum := 0.0
	for i := range got {
		d := got[i] - want[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(got))), nil
}

// ConvergenceOrder fits err = c * h^p on a log-log scale and returns the
// estimated order p and prefactor c. It needs at least two (h, err) pairs
// with positive entries.
func ConvergenceOrder(hs, errs []float64) (order, c float64, err error) {
	if len(hs) != len(errs) {
		return 0, 0, fmt.Errorf("series length mismatch: %d vs %d", len(hs), len(errs))
	}
	if len(hs) < 2 {
		return 0, 0, fmt.Errorf("need at least 2 samples, got %d", len(hs))
	}

	logH := make([]float64, len(hs))
	logE := make([]float64, len(errs))
	for i := range hs {
		if hs[i] <= 0 || errs[i] <= 0 {
			return 0, 0, fmt.Errorf("sample %d not positive: h = %g, err = %g", i, hs[i], errs[i])
		}
		logH[i] = math.Log(hs[i])
		logE[i] = math.Log(errs[i])
	}

	intercept, slope := stat.LinearRegression(logH, logE, nil, false)
	return slope, math.Exp(intercept), nil
}
