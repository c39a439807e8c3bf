package analysis

import (
	"math/rand"
	"time"

	"github.com/mzhv/oscil/internal/force"
	"github.com/mzhv/oscil/internal/metrics"
	"github.com/mzhv/oscil/internal/motion"
)

// Trial is the outcome of one perturbed run.
type Trial struct {
	X0      float64
	V0      float64
	Result  motion.Result
	Bounded bool
	Err     error
}

// MonteCarlo runs repeated propagations from randomly jittered initial
// conditions and reports which ones stayed bounded. Each trial draws its
// starting position and velocity uniformly from base plus or minus
// perturbation; a trial counts as bounded when |x| never exceeded bound and
// the terminal state is finite. A zero seed is replaced with the clock.
//
// Trials run sequentially so a fixed seed reproduces the exact same draws.
func MonteCarlo(fld force.Field, base motion.Params, perturbation, bound float64, trials int, seed int64) []Trial {
	if trials < 1 {
		return nil
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	out := make([]Trial, trials)
	for i := range out {
		p := base
		p.X0 = base.X0 + (rng.Float64()-0.5)*2*perturbation
		p.V0 = base.V0 + (rng.Float64()-0.5)*2*perturbation

		bm := metrics.NewBounded(bound)
		prop := motion.New(fld.Accel)
		prop.AddMetric(bm)

		out[i] = Trial{X0: p.X0, V0: p.V0}

		res, err := prop.Run(p)
		if err != nil {
			out[i].Err = err
			continue
		}

		out[i].Result = res
		out[i].Bounded = bm.Value() == 1.0 && res.IsFinite()
	}

	return out
}

// BoundedShare returns the fraction of trials that completed and stayed
// bounded. Trials that errored count against the share.
func BoundedShare(trials []Trial) float64 {
	if len(trials) == 0 {
		return 0
	}
	bounded := 0
	for _, tr := range trials {
		if tr.Err == nil && tr.Bounded {
			bounded++
		}
	}
	return float64(bounded) / float64(len(trials))
}
