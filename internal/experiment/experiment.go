// Package experiment turns a run configuration into a simulated, measured
// result.
package experiment

import (
	"context"

	"github.com/san-kum/solosc/internal/config"
	"github.com/san-kum/solosc/internal/metrics"
	"github.com/san-kum/solosc/internal/oscil"
)

type Result struct {
	Times  []float64
	Signal []float64
	// Flux is the display series flux*(1+signal); nil when the config has
	// no flux level.
	Flux []float64

	KickTimestep float64
	WarmupKicks  int
	Metrics      map[string]float64
}

type Experiment struct {
	cfg       *config.Config
	parallel  bool
	observers []oscil.Observer
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// SetParallel selects the mode-parallel simulation path.
func (e *Experiment) SetParallel(p bool) { e.parallel = p }

// AddObserver forwards simulator stage transitions to o.
func (e *Experiment) AddObserver(o oscil.Observer) { e.observers = append(e.observers, o) }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	times, err := e.cfg.Times()
	if err != nil {
		return nil, err
	}

	sim, err := oscil.New(e.cfg.ModeSet(), e.cfg.SimConfig())
	if err != nil {
		return nil, err
	}
	for _, o := range e.observers {
		sim.AddObserver(o)
	}

	var signal []float64
	if e.parallel {
		signal, err = sim.RunParallel(ctx, times)
	} else {
		signal, err = sim.Run(ctx, times)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Times:        times,
		Signal:       signal,
		KickTimestep: sim.KickTimestep(),
		WarmupKicks:  sim.WarmupKicks(),
		Metrics:      metrics.Collect(metrics.Defaults(), times, signal),
	}

	if e.cfg.Flux > 0 {
		res.Flux = make([]float64, len(signal))
		for j, v := range signal {
			res.Flux[j] = e.cfg.Flux * (1 + v)
		}
	}

	return res, nil
}
