package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	out := FFT(data)

	if math.Abs(real(out[0])-4) > 1e-12 {
		t.Errorf("expected DC bin 4, got %v", out[0])
	}
	for k := 1; k < len(out); k++ {
		if math.Abs(real(out[k])) > 1e-12 || math.Abs(imag(out[k])) > 1e-12 {
			t.Errorf("bin %d should vanish, got %v", k, out[k])
		}
	}
}

func TestPowerSpectrumSinusoidPeak(t *testing.T) {
	const (
		n  = 256
		dt = 0.01
	)
	// Exactly on bin 16: f = 16/(n*dt).
	f0 := FrequencyAt(16, n, dt)

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * f0 * float64(i) * dt)
	}

	ps := PowerSpectrum(data)

	peak, _ := DominantFrequency(ps, n, dt)
	if math.Abs(peak-f0) > 1e-9 {
		t.Errorf("expected dominant frequency %v, got %v", f0, peak)
	}
}

// The spectrum is already one-sided: it spans bins 0..n/2-1 and a tone in
// the upper half of that range must still land on its bin.
func TestPowerSpectrumOneSided(t *testing.T) {
	const (
		n  = 256
		dt = 0.01
	)
	f0 := FrequencyAt(100, n, dt)

	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * f0 * float64(i) * dt)
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("expected %d one-sided bins, got %d", n/2, len(ps))
	}

	peak, _ := DominantFrequency(ps, n, dt)
	if math.Abs(peak-f0) > 1e-9 {
		t.Errorf("expected dominant frequency %v, got %v", f0, peak)
	}
}

func TestPadPow2(t *testing.T) {
	padded := PadPow2(make([]float64, 100))
	if len(padded) != 128 {
		t.Errorf("expected padding to 128, got %d", len(padded))
	}

	exact := make([]float64, 64)
	if len(PadPow2(exact)) != 64 {
		t.Error("power-of-two input should not grow")
	}
}
