package motion

import "sync"

// SweepRun is the outcome of one step size in a sweep.
type SweepRun struct {
	H       float64
	Result  Result
	Metrics map[string]float64
	Err     error
}

// Sweep propagates the same force and initial conditions once per step size,
// each run in its own goroutine. Runs share nothing, so the fan-out needs no
// coordination beyond the join. metricsFor, when non-nil, builds a fresh set
// of metrics for each run; their final values land in SweepRun.Metrics.
func Sweep(f Force, base Params, hs []float64, metricsFor func() []Metric) []SweepRun {
	runs := make([]SweepRun, len(hs))

	var wg sync.WaitGroup
	for i, h := range hs {
		wg.Add(1)
		go func(idx int, h float64) {
			defer wg.Done()

			p := base
			p.H = h

			prop := New(f)
			var ms []Metric
			if metricsFor != nil {
				ms = metricsFor()
				for _, m := range ms {
					prop.AddMetric(m)
				}
			}

			res, err := prop.Run(p)
			run := SweepRun{H: h, Result: res, Err: err}
			if len(ms) > 0 {
				run.Metrics = make(map[string]float64, len(ms))
				for _, m := range ms {
					run.Metrics[m.Name()] = m.Value()
				}
			}
			runs[idx] = run
		}(i, h)
	}
	wg.Wait()

	return runs
}
