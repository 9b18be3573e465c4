package bass

import "errors"

var (
	// ErrInvalidSampleRate is returned for a sample rate that is not positive
	// and finite.
	ErrInvalidSampleRate = errors.New("bass: sample rate must be positive and finite")

	// ErrInvalidMode is returned when a mode name or value is not one of A to D.
	ErrInvalidMode = errors.New("bass: invalid mode")
)
