package calls_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/callqa/internal/calls"
	"github.com/JaimeStill/callqa/pkg/repository"
	"github.com/JaimeStill/callqa/pkg/storage"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"call not found", calls.ErrNotFound, http.StatusNotFound},
		{"no recording", calls.ErrRecordingUnavailable, http.StatusNotFound},
		{"bad filter", fmt.Errorf("%w: start_date", calls.ErrInvalidFilter), http.StatusBadRequest},
		{"bad evaluation", calls.ErrInvalidEvaluation, http.StatusBadRequest},
		{"bad id", calls.ErrInvalidID, http.StatusBadRequest},
		{"database down", repository.ErrUnavailable, http.StatusServiceUnavailable},
		{"stored key rejected", fmt.Errorf("download recording: %w", storage.ErrInvalidKey), http.StatusNotFound},
		{"blob missing", fmt.Errorf("download recording: %w", storage.ErrNotFound), http.StatusNotFound},
		{"blob service down", fmt.Errorf("download recording: %w", storage.ErrUnavailable), http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calls.MapHTTPStatus(tt.err))
		})
	}
}
