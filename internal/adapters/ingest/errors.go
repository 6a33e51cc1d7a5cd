package ingest

import "errors"

// Sentinel error kinds for input adapters.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrHeader         = errors.New("invalid header")
	ErrMalformedValue = errors.New("malformed value")
	ErrUnknownFormat  = errors.New("unknown input format")
)
