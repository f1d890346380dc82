// Package metrics computes summary statistics over simulated signal series.
package metrics

import "math"

// Metric accumulates one statistic over (time, value) samples.
type Metric interface {
	Name() string
	Observe(t, v float64)
	Value() float64
	Reset()
}

// Variance estimates the sample variance of the signal. For a single mode in
// steady state this converges to ampl^2/2.
type Variance struct {
	n    int
	mean float64
	m2   float64
}

func NewVariance() *Variance { return &Variance{} }

func (m *Variance) Name() string { return "variance" }

func (m *Variance) Observe(t, v float64) {
	// Welford update.
	m.n++
	delta := v - m.mean
	m.mean += delta / float64(m.n)
	m.m2 += delta * (v - m.mean)
}

func (m *Variance) Value() float64 {
	if m.n < 2 {
		return 0
	}
	return m.m2 / float64(m.n-1)
}

func (m *Variance) Mean() float64 { return m.mean }

func (m *Variance) Reset() { *m = Variance{} }

// RMS accumulates the root mean square of the signal.
type RMS struct {
	n     int
	sumSq float64
}

func NewRMS() *RMS { return &RMS{} }

func (m *RMS) Name() string { return "rms" }

func (m *RMS) Observe(t, v float64) {
	m.n++
	m.sumSq += v * v
}

func (m *RMS) Value() float64 {
	if m.n == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.n))
}

func (m *RMS) Reset() { *m = RMS{} }

// PeakToPeak tracks the full range of the signal.
type PeakToPeak struct {
	n        int
	min, max float64
}

func NewPeakToPeak() *PeakToPeak { return &PeakToPeak{} }

func (m *PeakToPeak) Name() string { return "peak_to_peak" }

func (m *PeakToPeak) Observe(t, v float64) {
	if m.n == 0 {
		m.min, m.max = v, v
	} else {
		m.min = math.Min(m.min, v)
		m.max = math.Max(m.max, v)
	}
	m.n++
}

func (m *PeakToPeak) Value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.max - m.min
}

func (m *PeakToPeak) Reset() { *m = PeakToPeak{} }

// Defaults returns the metric set computed for every run.
func Defaults() []Metric {
	return []Metric{NewVariance(), NewRMS(), NewPeakToPeak()}
}

// Collect runs the metrics over a finished series and returns name→value.
func Collect(ms []Metric, times, signal []float64) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for j := range signal {
		var t float64
		if j < len(times) {
			t = times[j]
		}
		for _, m := range ms {
			m.Observe(t, signal[j])
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
