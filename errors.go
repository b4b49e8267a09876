package babyjubjub

import "errors"

var (
	// ErrNotOnCurve is returned when a decoded point fails the curve
	// equation, or when no valid y exists for a given x (and vice versa).
	ErrNotOnCurve = errors.New("babyjubjub: point is not on the curve")

	// ErrInvalidSignature is returned for structurally malformed signatures
	// or keys at verification time. A well-formed but non-matching
	// signature is not an error; Verify reports it as false.
	ErrInvalidSignature = errors.New("babyjubjub: structurally invalid signature")
)
