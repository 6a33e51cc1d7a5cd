package api

import (
	"errors"
	"net/http"

	"github.com/okian/pele/internal/adapters/repository"
	service "github.com/okian/pele/internal/app"
	"github.com/okian/pele/internal/domain/rating"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limited")
)

// statusFor maps an upstream error to an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, repository.ErrInvalidLimit),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrUnknownBucket),
		errors.Is(err, rating.ErrUnknownWeights),
		errors.Is(err, rating.ErrUnknownGroupColumn),
		errors.Is(err, rating.ErrMissingColumn),
		errors.Is(err, rating.ErrNegativeMinutes):
		return http.StatusBadRequest, "bad_request"
	}
	return http.StatusInternalServerError, "internal_error"
}
