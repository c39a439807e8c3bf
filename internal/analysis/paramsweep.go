package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/metrics"
	"github.com/mzhv/oscil/internal/motion"
)

// ParamPoint is the outcome of one parameter value in a sweep.
type ParamPoint struct {
	Value  float64
	Result motion.Result
	PeakX  float64
	PeakV  float64
	Err    error
}

// ParamSweep runs the same propagation across steps evenly spaced values of
// one force parameter, recording the terminal state and peak magnitudes per
// value. Sweeping drive amplitude on a driven system traces out a response
// curve; sweeping well depth on a bistable one shows where escapes start.
func ParamSweep(kind, param string, from, to float64, steps int, params map[string]float64, base motion.Params) []ParamPoint {
	if steps < 1 {
		return nil
	}

	values := make([]float64, steps)
	if steps == 1 {
		values[0] = from
	} else {
		floats.Span(values, from, to)
	}

	points := make([]ParamPoint, steps)
	for i, v := range values {
		p := make(map[string]float64, len(params)+1)
		for k, pv := range params {
			p[k] = pv
		}
		p[param] = v

		points[i] = ParamPoint{Value: v}

		fld, err := force.Build(kind, p)
		if err != nil {
			points[i].Err = err
			continue
		}

		ext := metrics.NewExtremes()
		prop := motion.New(fld.Accel)
		prop.AddMetric(ext)

		res, err := prop.Run(base)
		if err != nil {
			points[i].Err = err
			continue
		}

		points[i].Result = res
		points[i].PeakX = ext.Value()
		points[i].PeakV = ext.PeakSpeed()
	}

	return points
}
