package metrics

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/callqa/internal/calls"
	"github.com/JaimeStill/callqa/pkg/handlers"
	"github.com/JaimeStill/callqa/pkg/routes"
)

// Handler provides HTTP endpoints for evaluation metrics.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "metrics"),
	}
}

// Routes returns the route group definition for metrics endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/metrics",
		Tags:    []string{"Metrics"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Summary, OpenAPI: spec.Summary},
			{Method: "GET", Pattern: "/clinics", Handler: h.Clinics, OpenAPI: spec.Clinics},
			{Method: "GET", Pattern: "/assistants", Handler: h.Assistants, OpenAPI: spec.Assistants},
		},
	}
}

// Summary returns the KPI summary for the query parameter filters.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	filters, err := calls.FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	summary, err := h.sys.Summary(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, calls.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Clinics returns the clinic ranking for the query parameter filters.
func (h *Handler) Clinics(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, ByClinic)
}

// Assistants returns the assistant ranking for the query parameter filters.
func (h *Handler) Assistants(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, ByAssistant)
}

func (h *Handler) ranking(w http.ResponseWriter, r *http.Request, by Dimension) {
	filters, err := calls.FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	ranking, err := h.sys.Ranking(r.Context(), filters, by)
	if err != nil {
		handlers.RespondError(w, h.logger, calls.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ranking)
}
