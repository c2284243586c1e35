package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for impact calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrNegativeValue indicates a negative energy value.
	ErrNegativeValue = constError("negative energy value")

	// ErrCoverageOutOfRange indicates a solar coverage outside 0-100 percent.
	ErrCoverageOutOfRange = constError("solar coverage must be between 0 and 100 percent")

	// ErrInvalidFactor indicates a missing or non-positive emission factor.
	ErrInvalidFactor = constError("emission factor must be positive")

	// ErrCalculationOverflow indicates a value too large to calculate safely.
	ErrCalculationOverflow = constError("calculation overflow")
)
