package config

// Presets are ready-made mode tables. Units follow the usual convention:
// time in Ms, frequencies in microHz, amplitudes in ppm, damping in 1/Ms
// (peak FWHM linewidth = eta/pi).
var Presets = map[string]*Config{
	// The two-mode example from De Ridder et al. (2006).
	"demo": {
		KickFactor:     DefaultKickFactor,
		MaxWarmupKicks: DefaultMaxWarmupKicks,
		Flux:           1e6,
		Time:           TimeConfig{Start: 0, End: 40, Samples: 100},
		Modes: []ModeConfig{
			{Freq: 23.0, Ampl: 100.0, Eta: 1e-6},
			{Freq: 23.5, Ampl: 110.0, Eta: 3e-6},
		},
	},
	"single": {
		KickFactor:     DefaultKickFactor,
		MaxWarmupKicks: DefaultMaxWarmupKicks,
		Time:           TimeConfig{Start: 0, End: 40, Samples: 400},
		Modes: []ModeConfig{
			{Freq: 23.0, Ampl: 100.0, Eta: 1e-6},
		},
	},
	// Solar p modes near the 3100 microHz power maximum, ~1 microHz
	// linewidths.
	"solar": {
		KickFactor:     DefaultKickFactor,
		MaxWarmupKicks: DefaultMaxWarmupKicks,
		Flux:           1e6,
		Time:           TimeConfig{Start: 0, End: 0.3456, Samples: 8640},
		Modes: []ModeConfig{
			{Freq: 2963.3, Ampl: 2.1, Eta: 2.8},
			{Freq: 3033.8, Ampl: 2.6, Eta: 3.0},
			{Freq: 3098.2, Ampl: 2.9, Eta: 3.2},
			{Freq: 3168.6, Ampl: 2.7, Eta: 3.5},
			{Freq: 3233.2, Ampl: 2.3, Eta: 3.9},
		},
	},
	// Long-lived red-giant modes: narrow linewidths, long damping times.
	"redgiant": {
		KickFactor:     DefaultKickFactor,
		MaxWarmupKicks: DefaultMaxWarmupKicks,
		Flux:           1e6,
		Time:           TimeConfig{Start: 0, End: 12, Samples: 2000},
		Modes: []ModeConfig{
			{Freq: 55.2, Ampl: 45.0, Eta: 0.08},
			{Freq: 61.0, Ampl: 60.0, Eta: 0.06},
			{Freq: 67.1, Ampl: 48.0, Eta: 0.09},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
