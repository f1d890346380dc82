package oscil

// Stream samples a single realization incrementally, for consumers that do
// not know the full output grid up front (live views, pipelines). The first
// Next call runs warm-up and anchors the kick schedule around its time;
// later calls must use non-decreasing times.
type Stream struct {
	sim     *Simulator
	states  []ModeState
	started bool
	last    float64
}

// Stream returns an incremental sampler drawing from the simulator's random
// source. Only one Stream or Run should consume a simulator at a time.
func (s *Simulator) Stream() *Stream {
	return &Stream{sim: s}
}

// Next advances every mode through its pending kicks and returns the summed
// signal at time t.
func (st *Stream) Next(t float64) (float64, error) {
	s := st.sim
	if !st.started {
		st.states = make([]ModeState, s.modes.Len())
		s.warmup(st.states, s.rng)
		for i := range st.states {
			st.states[i].initClock(t, s.kickStep, s.rng)
		}
		st.started = true
		st.last = t
	}
	if t < st.last {
		return 0, ErrNonMonotonicTime
	}
	st.last = t

	var v float64
	for i := range st.states {
		st.states[i].AdvanceTo(t, s.modes.Eta[i], s.kickAmpl[i], s.kickStep, s.rng)
		v += s.sample(&st.states[i], t, i)
	}
	return v, nil
}
