package types

import "errors"

// Sentinel errors shared across repository and use case layers. Handlers map
// these to HTTP statuses; everything else surfaces as an internal error.
var (
	// ErrNotFound covers both absent records and records owned by another
	// caller. The two cases are deliberately indistinguishable to avoid
	// leaking record existence.
	ErrNotFound = errors.New("record not found")

	// ErrNotYetComputed means the assessment exists but has never been
	// through a compute, so no derived result is stored.
	ErrNotYetComputed = errors.New("assessment has not been computed yet")

	// ErrInvalidInput marks malformed request bodies or payload shapes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated means no caller identity was presented.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrHasProducts rejects deletion of an org assessment that still owns
	// product assessments.
	ErrHasProducts = errors.New("org assessment still has product assessments")

	// ErrConflict is reserved for concurrent-patch rejection.
	ErrConflict = errors.New("conflicting concurrent update")
)
