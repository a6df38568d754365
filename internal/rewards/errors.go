package rewards

import "errors"

var (
	// ErrUnknownChallenge indicates a challenge id absent from the catalog.
	// This is a caller/catalog mismatch and must not be silently swallowed.
	ErrUnknownChallenge = errors.New("unknown challenge")
	// ErrUnknownAction indicates an action kind the engine does not track.
	ErrUnknownAction = errors.New("unknown action kind")
	// ErrMissingContentID indicates an action that requires a content id was
	// reported without one.
	ErrMissingContentID = errors.New("content id is required")
	// ErrNegativePoints indicates a caller tried to award negative points,
	// which would break point monotonicity.
	ErrNegativePoints = errors.New("awarded points must not be negative")
)
