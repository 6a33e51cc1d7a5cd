package rating

import "errors"

// Sentinel error kinds for the rating pipeline. Callers match them with errors.Is.
var (
	ErrMissingColumn      = errors.New("missing required column")
	ErrUnknownGroupColumn = errors.New("unknown group column")
	ErrNegativeMinutes    = errors.New("negative minutes")
	ErrUnknownWeights     = errors.New("unknown weights")
	ErrUnknownWeightKey   = errors.New("unknown weight key")
)
