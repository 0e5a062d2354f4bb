package pipeline

import "errors"

// Hard preconditions. These surface to the user immediately; nothing is
// retried and no network call happens first.
var (
	ErrMissingInput      = errors.New("input is required")
	ErrMissingCredential = errors.New("gemini api key is required")
)
