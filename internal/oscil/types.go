package oscil

import "fmt"

// ModeSet holds the immutable inputs of the simulated modes. Index i across
// the three slices describes one mode. Units are the caller's concern: the
// product freq*time must be dimensionless (e.g. time in Ms, freq in microHz)
// and eta is in inverse time units.
type ModeSet struct {
	Freq []float64
	Ampl []float64
	Eta  []float64
}

// Len returns the number of modes.
func (m ModeSet) Len() int { return len(m.Freq) }

// Validate checks shape and domain constraints. It returns a wrapped
// ErrLengthMismatch, ErrNonPositiveDamping or ErrNegativeAmplitude.
func (m ModeSet) Validate() error {
	if len(m.Ampl) != len(m.Freq) || len(m.Eta) != len(m.Freq) {
		return fmt.Errorf("%w: freq=%d ampl=%d eta=%d",
			ErrLengthMismatch, len(m.Freq), len(m.Ampl), len(m.Eta))
	}
	for i, eta := range m.Eta {
		if eta <= 0 {
			return fmt.Errorf("%w: eta[%d]=%g", ErrNonPositiveDamping, i, eta)
		}
	}
	for i, a := range m.Ampl {
		if a < 0 {
			return fmt.Errorf("%w: ampl[%d]=%g", ErrNegativeAmplitude, i, a)
		}
	}
	return nil
}

// Config controls the discretization of the stochastic excitation.
type Config struct {
	// KickFactor is the number of re-excitation events per shortest damping
	// time. The kick timestep is 1/(KickFactor*max(eta)).
	KickFactor float64

	// MaxWarmupKicks caps the number of warm-up kicks used to erase the
	// zero initial condition, bounding cost for nearly undamped modes.
	MaxWarmupKicks int

	// Seed for the simulator's random source. Runs with equal inputs and
	// equal seeds are bit-for-bit reproducible.
	Seed int64

	// FastTrig samples mode phases through a precomputed lookup table
	// instead of math.Sin/math.Cos.
	FastTrig bool
}

// DefaultConfig returns the reference discretization: 100 kicks per shortest
// damping time and a warm-up cap of 20000 kicks.
func DefaultConfig() Config {
	return Config{
		KickFactor:     100,
		MaxWarmupKicks: 20000,
	}
}

func (c Config) validate() error {
	if c.KickFactor <= 0 {
		return fmt.Errorf("%w: kick factor %g", ErrInvalidConfig, c.KickFactor)
	}
	if c.MaxWarmupKicks <= 0 {
		return fmt.Errorf("%w: warm-up cap %d", ErrInvalidConfig, c.MaxWarmupKicks)
	}
	return nil
}

// Stage identifies a phase of a simulation run.
type Stage int

const (
	StageDerive Stage = iota
	StageWarmup
	StageKickInit
	StageEvolve
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageDerive:
		return "derive"
	case StageWarmup:
		return "warmup"
	case StageKickInit:
		return "kickinit"
	case StageEvolve:
		return "evolve"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Progress describes a stage transition, replacing the textual diagnostics a
// simulation host would otherwise print.
type Progress struct {
	Stage        Stage
	Modes        int
	KickTimestep float64
	WarmupKicks  int
}

// Observer receives stage transitions during a run.
type Observer interface {
	OnStage(p Progress)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(p Progress)

func (f ObserverFunc) OnStage(p Progress) { f(p) }
