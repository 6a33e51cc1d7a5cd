package repository

import "errors"

// Sentinel kinds for ranking lookups.
var (
	ErrNotFound     = errors.New("player not found")
	ErrInvalidLimit = errors.New("invalid limit")
)
