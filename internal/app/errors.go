package service

import "errors"

// Sentinel kinds for service errors. Lookups of unknown players and invalid
// limits reuse the repository kinds.
var (
	ErrNotStarted = errors.New("service not started")
	ErrEmptyQuery = errors.New("empty search query")
	ErrNoData     = errors.New("no dataset configured")

	ErrUnknownBucket = errors.New("unknown position bucket")
)
