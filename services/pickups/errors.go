package pickups

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidHour is returned for an hour outside 0..23
	ErrInvalidHour = errors.New("hour must be between 0 and 23")
	// ErrNotLoaded is returned while no dataset has been loaded yet
	ErrNotLoaded = errors.New("dataset not loaded")
	// ErrCacheMiss is returned by snapshot caches when nothing is stored
	ErrCacheMiss = errors.New("snapshot not cached")
	// ErrUnknownView is returned for a map view that is not configured
	ErrUnknownView = errors.New("unknown map view")
	// ErrInvalidPage is returned for a negative offset or limit
	ErrInvalidPage = errors.New("offset and limit must not be negative")
)

// ValidateHour checks that hour is a valid hour of the day
func ValidateHour(hour int) error {
	if hour < 0 || hour > 23 {
		return ErrInvalidHour
	}
	return nil
}

// HTTPStatus maps a use case error to the status code returned to clients
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidHour), errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownView):
		return http.StatusNotFound
	case errors.Is(err, ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
