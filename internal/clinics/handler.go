package clinics

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/callqa/pkg/handlers"
	"github.com/JaimeStill/callqa/pkg/routes"
)

// Handler provides HTTP endpoints for clinic reference data.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "clinics"),
	}
}

// Routes returns the route group definition for clinic endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/options",
		Tags:    []string{"Options"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Options, OpenAPI: spec.Options},
		},
	}
}

// Options returns clinics and the assistants scoped to the optional clinic_id parameter.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	var clinicID *uuid.UUID

	if raw := strings.TrimSpace(r.URL.Query().Get("clinic_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidClinic)
			return
		}
		clinicID = &id
	}

	opts, err := h.sys.Options(r.Context(), clinicID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, opts)
}
