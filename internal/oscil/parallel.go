package oscil

import (
	"context"
	"math/rand"
	"runtime"
	"sync"
)

// RunParallel simulates one realization with the modes fanned out across
// worker goroutines. Each mode draws from its own random source seeded
// Seed+1+index, and per-mode contributions are reduced in index order, so
// the result is deterministic for a fixed seed. It is statistically
// equivalent to Run but not sample-identical: the sequential path interleaves
// all modes' draws on one shared source.
func (s *Simulator) RunParallel(ctx context.Context, times []float64) ([]float64, error) {
	if err := checkMonotonic(times); err != nil {
		return nil, err
	}

	signal := make([]float64, len(times))
	if len(times) == 0 || s.modes.Len() == 0 {
		return signal, nil
	}

	s.emit(StageDerive)

	nmode := s.modes.Len()
	contrib := make([][]float64, nmode)

	parallelFor(nmode, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			contrib[i] = s.runMode(i, times)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, c := range contrib {
		for j, v := range c {
			signal[j] += v
		}
	}

	s.emit(StageDone)
	return signal, nil
}

// runMode evolves a single mode over the whole output grid with an
// independent random source.
func (s *Simulator) runMode(i int, times []float64) []float64 {
	rng := rand.New(rand.NewSource(s.cfg.Seed + 1 + int64(i)))

	var st ModeState
	s.warmupMode(&st, i, rng)
	st.initClock(times[0], s.kickStep, rng)

	out := make([]float64, len(times))
	for j, t := range times {
		st.AdvanceTo(t, s.modes.Eta[i], s.kickAmpl[i], s.kickStep, rng)
		out[j] = s.sample(&st, t, i)
	}
	return out
}

// warmupMode is the single-mode warm-up used by the parallel path. The kick
// count stays the globally derived one so both paths share statistics.
func (s *Simulator) warmupMode(st *ModeState, i int, rng *rand.Rand) {
	damp := dampFactor(s.modes.Eta[i], s.kickStep)
	for k := 0; k < s.warmupKicks; k++ {
		st.warmKick(damp, s.kickAmpl[i], rng)
	}
}

// parallelFor executes fn over chunks of [0, n) on up to GOMAXPROCS workers.
func parallelFor(n int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
