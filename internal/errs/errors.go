package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	// ErrInvalid marks missing or malformed caller input.
	ErrInvalid = errors.New("invalid")
)
