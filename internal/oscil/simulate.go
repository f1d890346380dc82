package oscil

import (
	"context"
	"math"
	"math/rand"
)

// Simulator produces realizations of the summed mode signal on arbitrary
// non-decreasing output time grids.
type Simulator struct {
	modes     ModeSet
	cfg       Config
	rng       *rand.Rand
	observers []Observer
	trig      *TrigTable

	// derived once from the mode set
	kickStep    float64
	kickAmpl    []float64
	warmupKicks int
}

// New derives the kick schedule from the mode set and seeds the simulator's
// random source. The mode set is validated up front; no simulation work is
// done on invalid input.
func New(modes ModeSet, cfg Config) (*Simulator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := modes.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		modes: modes,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}
	if cfg.FastTrig {
		s.trig = DefaultTrigTable
	}
	s.derive()
	return s, nil
}

// derive computes the global kick timestep from the fastest-damped mode, the
// per-mode kick amplitudes that balance injection against decay, and the
// warm-up kick count spanning roughly one longest damping time.
func (s *Simulator) derive() {
	if s.modes.Len() == 0 {
		return
	}

	maxEta, minEta := s.modes.Eta[0], s.modes.Eta[0]
	for _, eta := range s.modes.Eta[1:] {
		maxEta = math.Max(maxEta, eta)
		minEta = math.Min(minEta, eta)
	}

	// Re-excite much more often than the fastest decay, so the discrete
	// kicks approximate continuous stochastic forcing.
	s.kickStep = 1.0 / (s.cfg.KickFactor * maxEta)

	// Stationary variance of damp*x + kickAmpl*N(0,1) with
	// damp = exp(-eta*step) is kickAmpl^2/(1-damp^2) ~ ampl^2/2 for
	// eta*step << 1.
	s.kickAmpl = make([]float64, s.modes.Len())
	for i := range s.kickAmpl {
		s.kickAmpl[i] = s.modes.Ampl[i] * math.Sqrt(s.kickStep*s.modes.Eta[i])
	}

	s.warmupKicks = int(math.Floor(1.0 / (minEta * s.kickStep)))
	if s.warmupKicks > s.cfg.MaxWarmupKicks {
		s.warmupKicks = s.cfg.MaxWarmupKicks
	}
}

// AddObserver registers an observer for stage transitions.
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// KickTimestep returns the derived interval between re-excitation events,
// shared by all modes. Zero for an empty mode set.
func (s *Simulator) KickTimestep() float64 { return s.kickStep }

// WarmupKicks returns the number of unrecorded kicks run before sampling.
func (s *Simulator) WarmupKicks() int { return s.warmupKicks }

func (s *Simulator) emit(stage Stage) {
	p := Progress{
		Stage:        stage,
		Modes:        s.modes.Len(),
		KickTimestep: s.kickStep,
		WarmupKicks:  s.warmupKicks,
	}
	for _, o := range s.observers {
		o.OnStage(p)
	}
}

// Run simulates one realization sampled at the given output times. The times
// must be non-decreasing; each call consumes the simulator's random source,
// so repeated calls yield further independent realizations of the same seed
// stream. The context is checked between output steps.
func (s *Simulator) Run(ctx context.Context, times []float64) ([]float64, error) {
	if err := checkMonotonic(times); err != nil {
		return nil, err
	}

	signal := make([]float64, len(times))
	if len(times) == 0 || s.modes.Len() == 0 {
		return signal, nil
	}

	s.emit(StageDerive)

	states := make([]ModeState, s.modes.Len())
	s.warmup(states, s.rng)
	s.emit(StageWarmup)

	for i := range states {
		states[i].initClock(times[0], s.kickStep, s.rng)
	}
	s.emit(StageKickInit)

	s.emit(StageEvolve)
	for j, t := range times {
		select {
		case <-ctx.Done():
			return signal[:j], ctx.Err()
		default:
		}
		for i := range states {
			states[i].AdvanceTo(t, s.modes.Eta[i], s.kickAmpl[i], s.kickStep, s.rng)
			signal[j] += s.sample(&states[i], t, i)
		}
	}

	s.emit(StageDone)
	return signal, nil
}

func (s *Simulator) sample(st *ModeState, t float64, i int) float64 {
	if s.trig != nil {
		return st.sampleTable(t, s.modes.Eta[i], s.modes.Freq[i], s.trig)
	}
	return st.Sample(t, s.modes.Eta[i], s.modes.Freq[i])
}

// warmup iterates the kick recurrence without recording output, erasing the
// zero-initial-condition bias before the first sample.
func (s *Simulator) warmup(states []ModeState, rng *rand.Rand) {
	damp := make([]float64, len(states))
	for i := range states {
		damp[i] = dampFactor(s.modes.Eta[i], s.kickStep)
	}
	for k := 0; k < s.warmupKicks; k++ {
		for i := range states {
			states[i].warmKick(damp[i], s.kickAmpl[i], rng)
		}
	}
}

func checkMonotonic(times []float64) error {
	for j := 1; j < len(times); j++ {
		if times[j] < times[j-1] {
			return ErrNonMonotonicTime
		}
	}
	return nil
}

// Simulate is a one-call convenience around New and Run with default
// discretization parameters.
func Simulate(times, freq, ampl, eta []float64, seed int64) ([]float64, error) {
	cfg := DefaultConfig()
	cfg.Seed = seed
	sim, err := New(ModeSet{Freq: freq, Ampl: ampl, Eta: eta}, cfg)
	if err != nil {
		return nil, err
	}
	return sim.Run(context.Background(), times)
}
