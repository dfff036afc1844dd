package clinics

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/callqa/pkg/repository"
)

// ErrInvalidClinic is returned when a clinic_id parameter is not a UUID.
var ErrInvalidClinic = errors.New("invalid clinic_id")

// MapHTTPStatus maps clinic domain and store errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidClinic):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
