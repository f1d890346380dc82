// Package analysis provides frequency-domain inspection of simulated series.
package analysis

import (
	"math"
	"math/cmplx"
)

func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the one-sided amplitude spectrum of data, which is
// zero-padded to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	padded := PadPow2(data)
	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// PadPow2 zero-pads data to the next power-of-two length.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	if n == len(data) {
		return data
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// FrequencyAt maps a spectrum bin to a frequency, given the sampling
// interval of the (uniform) time grid the spectrum was computed from.
func FrequencyAt(bin, fftLen int, dt float64) float64 {
	if fftLen == 0 || dt == 0 {
		return 0
	}
	return float64(bin) / (float64(fftLen) * dt)
}

// DominantFrequency returns the frequency and power of the strongest
// non-DC spectral bin.
func DominantFrequency(ps []float64, fftLen int, dt float64) (freq, power float64) {
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > power {
			power = ps[i]
			maxIdx = i
		}
	}
	return FrequencyAt(maxIdx, fftLen, dt), power
}
