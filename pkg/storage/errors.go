package storage

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound = errors.New("blob not found")
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey rejects keys containing a ".." segment.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	// ErrUnavailable wraps transport and service failures from the blob endpoint.
	ErrUnavailable = errors.New("blob service unavailable")
)

// MapHTTPStatus maps storage errors to HTTP status codes. Errors outside
// this package map to 500.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
