package analysis

import (
	"fmt"
	"math"

	"github.com/mzhv/oscil/internal/motion"
)

// TuneEval is the measured terminal error for one candidate step size.
type TuneEval struct {
	H   float64
	Err float64
	OK  bool
}

// TuneStep searches candidate step sizes for the largest one whose terminal
// error against the exact solution stays within tol. Candidates run
// concurrently; the per-candidate evaluations come back in input order for
// reporting.
func TuneStep(f motion.Force, base motion.Params, hs []float64, exact func(t float64) (x, v float64), tol float64) (float64, []TuneEval, error) {
	if exact == nil {
		return 0, nil, fmt.Errorf("tuning needs an exact solution to measure against")
	}
	if len(hs) == 0 {
		return 0, nil, fmt.Errorf("no candidate step sizes")
	}
	if tol <= 0 {
		return 0, nil, fmt.Errorf("tolerance must be positive, got %g", tol)
	}

	wantX, wantV := exact(base.TMax)
	runs := motion.Sweep(f, base, hs, nil)

	evals := make([]TuneEval, len(runs))
	best := 0.0
	for i, run := range runs {
		evals[i] = TuneEval{H: run.H, Err: math.Inf(1)}
		if run.Err != nil || !run.Result.IsFinite() {
			continue
		}

		e := math.Max(math.Abs(run.Result.X-wantX), math.Abs(run.Result.V-wantV))
		evals[i].Err = e
		if e <= tol {
			evals[i].OK = true
			if run.H > best {
				best = run.H
			}
		}
	}

	if best == 0 {
		return 0, evals, fmt.Errorf("no candidate within tolerance %g", tol)
	}
	return best, evals, nil
}
