package oscil

import "errors"

// Domain errors for simulation inputs.
var (
	// ErrNonPositiveDamping indicates a damping rate <= 0. The recurrence
	// divides by eta, so undamped or growing modes are not supported.
	ErrNonPositiveDamping = errors.New("oscil: damping rate must be positive")

	// ErrLengthMismatch indicates freq/ampl/eta slices of unequal length.
	ErrLengthMismatch = errors.New("oscil: freq, ampl and eta must have equal length")

	// ErrNonMonotonicTime indicates output times that decrease. The per-mode
	// kick clock only advances, so samples must be requested in order.
	ErrNonMonotonicTime = errors.New("oscil: output times must be non-decreasing")

	// ErrNegativeAmplitude indicates a mode amplitude < 0.
	ErrNegativeAmplitude = errors.New("oscil: mode amplitude must be non-negative")

	// ErrInvalidConfig indicates a non-positive kick factor or warm-up cap.
	ErrInvalidConfig = errors.New("oscil: invalid simulator configuration")
)
