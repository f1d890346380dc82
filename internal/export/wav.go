package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// WriteWAV sonifies the series as 16-bit mono PCM. Samples are normalized to
// peak at ±0.9; one simulated sample becomes one audio frame at the given
// rate, so the pitch mapping is the caller's choice of rate.
func WriteWAV(path string, signal []float64, sampleRate int) error {
	if len(signal) == 0 {
		return fmt.Errorf("export: no samples to write")
	}
	if sampleRate <= 0 {
		return fmt.Errorf("export: invalid sample rate %d", sampleRate)
	}

	data := Normalize(signal, 0.9)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// Normalize rescales the series so its absolute peak equals target. A flat
// series maps to all zeros.
func Normalize(signal []float64, target float64) []float32 {
	peak := 0.0
	for _, v := range signal {
		peak = math.Max(peak, math.Abs(v))
	}

	out := make([]float32, len(signal))
	if peak == 0 {
		return out
	}
	scale := target / peak
	for i, v := range signal {
		out[i] = float32(v * scale)
	}
	return out
}
