package oscil

import (
	"math"
	"math/rand"
)

// ModeState is the evolving excitation state of a single mode: the two
// quadrature amplitudes and the internal kick clock bounding their validity.
// The invariant NextKick == LastKick + kick timestep holds whenever the
// state is observed from outside AdvanceTo.
type ModeState struct {
	AmplSin  float64
	AmplCos  float64
	LastKick float64
	NextKick float64
}

// AdvanceTo applies every pending kick event up to and including target.
// Each kick damps both quadratures over the elapsed kick interval and adds
// an independent Gaussian increment of standard deviation kickAmpl, then
// moves the clock forward by step. The clock never rewinds: a target before
// NextKick leaves the state untouched.
func (st *ModeState) AdvanceTo(target, eta, kickAmpl, step float64, rng *rand.Rand) {
	for st.NextKick <= target {
		deltatime := st.NextKick - st.LastKick
		damp := math.Exp(-eta * deltatime)
		st.AmplSin = damp*st.AmplSin + kickAmpl*rng.NormFloat64()
		st.AmplCos = damp*st.AmplCos + kickAmpl*rng.NormFloat64()
		st.LastKick = st.NextKick
		st.NextKick += step
	}
}

// Sample damps the quadratures to the exact instant t and evaluates the
// mode's contribution to the signal. It consumes no randomness and does not
// move the kick clock, so AdvanceTo resumes correctly at the next sample.
// The caller must have advanced the state so that LastKick <= t < NextKick.
func (st *ModeState) Sample(t, eta, freq float64) float64 {
	damp := math.Exp(-eta * (t - st.LastKick))
	phase := 2 * math.Pi * freq * t
	return damp * (st.AmplSin*math.Sin(phase) + st.AmplCos*math.Cos(phase))
}

// sampleTable is Sample with table-lookup trig for the fast path.
func (st *ModeState) sampleTable(t, eta, freq float64, tab *TrigTable) float64 {
	damp := math.Exp(-eta * (t - st.LastKick))
	sin, cos := tab.SinCos(2 * math.Pi * freq * t)
	return damp * (st.AmplSin*sin + st.AmplCos*cos)
}

// warmKick applies one warm-up kick with a fixed damping factor. Warm-up
// runs on the kick cadence only, so damp = exp(-eta*step) is precomputed.
func (st *ModeState) warmKick(damp, kickAmpl float64, rng *rand.Rand) {
	st.AmplSin = damp*st.AmplSin + kickAmpl*rng.NormFloat64()
	st.AmplCos = damp*st.AmplCos + kickAmpl*rng.NormFloat64()
}

// dampFactor is the exponential decay over one interval of length dt.
func dampFactor(eta, dt float64) float64 {
	return math.Exp(-eta * dt)
}

// initClock draws the mode's kick phase uniformly within one kick interval
// before t0, staggering kick events across modes and relative to the first
// output time.
func (st *ModeState) initClock(t0, step float64, rng *rand.Rand) {
	st.LastKick = t0 - step + step*rng.Float64()
	st.NextKick = st.LastKick + step
}
