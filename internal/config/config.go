package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/solosc/internal/oscil"
)

const (
	DefaultKickFactor     = 100.0
	DefaultMaxWarmupKicks = 20000
	DefaultStart          = 0.0
	DefaultEnd            = 40.0
	DefaultSamples        = 100
)

// Config describes one simulation run: the output time grid, the mode table
// and the discretization parameters of the stochastic excitation.
type Config struct {
	Seed           int64        `yaml:"seed"`
	KickFactor     float64      `yaml:"kick_factor"`
	MaxWarmupKicks int          `yaml:"max_warmup_kicks"`
	Flux           float64      `yaml:"flux"`
	Time           TimeConfig   `yaml:"time"`
	Modes          []ModeConfig `yaml:"modes"`
}

// TimeConfig is a uniform grid of Samples points over [Start, End], or an
// explicit list of points which takes precedence when non-empty.
type TimeConfig struct {
	Start   float64   `yaml:"start"`
	End     float64   `yaml:"end"`
	Samples int       `yaml:"samples"`
	Points  []float64 `yaml:"points"`
}

type ModeConfig struct {
	Freq float64 `yaml:"freq"`
	Ampl float64 `yaml:"ampl"`
	Eta  float64 `yaml:"eta"`
}

func DefaultConfig() *Config {
	return &Config{
		KickFactor:     DefaultKickFactor,
		MaxWarmupKicks: DefaultMaxWarmupKicks,
		Time: TimeConfig{
			Start:   DefaultStart,
			End:     DefaultEnd,
			Samples: DefaultSamples,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Times materializes the output time grid.
func (c *Config) Times() ([]float64, error) {
	if len(c.Time.Points) > 0 {
		out := make([]float64, len(c.Time.Points))
		copy(out, c.Time.Points)
		return out, nil
	}
	if c.Time.Samples < 1 {
		return nil, fmt.Errorf("config: time grid needs at least 1 sample, got %d", c.Time.Samples)
	}
	if c.Time.End < c.Time.Start {
		return nil, fmt.Errorf("config: time grid end %g before start %g", c.Time.End, c.Time.Start)
	}

	out := make([]float64, c.Time.Samples)
	if c.Time.Samples == 1 {
		out[0] = c.Time.Start
		return out, nil
	}
	step := (c.Time.End - c.Time.Start) / float64(c.Time.Samples-1)
	for i := range out {
		out[i] = c.Time.Start + float64(i)*step
	}
	return out, nil
}

// ModeSet converts the mode table to simulator inputs.
func (c *Config) ModeSet() oscil.ModeSet {
	m := oscil.ModeSet{
		Freq: make([]float64, len(c.Modes)),
		Ampl: make([]float64, len(c.Modes)),
		Eta:  make([]float64, len(c.Modes)),
	}
	for i, mode := range c.Modes {
		m.Freq[i] = mode.Freq
		m.Ampl[i] = mode.Ampl
		m.Eta[i] = mode.Eta
	}
	return m
}

// SimConfig converts the discretization parameters to simulator options.
func (c *Config) SimConfig() oscil.Config {
	sc := oscil.DefaultConfig()
	if c.KickFactor > 0 {
		sc.KickFactor = c.KickFactor
	}
	if c.MaxWarmupKicks > 0 {
		sc.MaxWarmupKicks = c.MaxWarmupKicks
	}
	sc.Seed = c.Seed
	return sc
}
