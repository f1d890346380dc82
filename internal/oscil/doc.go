// Package oscil simulates time series of stochastically excited, damped
// oscillation modes (solar-like oscillations).
//
// Each mode is a damped harmonic oscillator re-excited ("kicked") at a fixed
// internal cadence by Gaussian increments to its two quadrature amplitudes.
// The kick amplitude is scaled so the long-run rms of the mode matches
// ampl/sqrt(2). The simulator couples this internal event clock to an
// arbitrary, possibly irregular, output time grid:
//
//   - [ModeSet]: immutable per-mode inputs (frequency, amplitude, damping)
//   - [ModeState]: per-mode excitation state advanced by kick events
//   - [Simulator]: orchestrates warm-up, kick scheduling and sampling
//   - [Stream]: incremental sampling for live consumers
//
// # Example
//
//	modes := oscil.ModeSet{
//		Freq: []float64{23.0, 23.5},  // microHz
//		Ampl: []float64{100, 110},    // ppm
//		Eta:  []float64{1e-6, 3e-6},  // 1/Ms
//	}
//	sim, _ := oscil.New(modes, oscil.DefaultConfig())
//	signal, _ := sim.Run(ctx, times)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: Run consumes the simulator's
// random source sequentially. RunParallel fans out across modes with
// independently seeded sources and is safe to call from one goroutine at a
// time.
package oscil
