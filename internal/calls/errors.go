package calls

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/callqa/pkg/repository"
	"github.com/JaimeStill/callqa/pkg/storage"
)

// Domain errors for call operations.
var (
	ErrNotFound             = errors.New("call not found")
	ErrInvalidFilter        = errors.New("invalid filter")
	ErrInvalidEvaluation    = errors.New("invalid evaluation")
	ErrInvalidID            = errors.New("invalid call id")
	ErrRecordingUnavailable = errors.New("call has no recording")
)

// MapHTTPStatus maps call domain and store errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRecordingUnavailable):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidFilter),
		errors.Is(err, ErrInvalidEvaluation),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, storage.ErrEmptyKey), errors.Is(err, storage.ErrInvalidKey):
		// a stored audio_url that does not resolve to a usable key
		return http.StatusNotFound
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrUnavailable):
		return storage.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}
