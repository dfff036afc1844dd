package calls

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/callqa/pkg/handlers"
	"github.com/JaimeStill/callqa/pkg/pagination"
	"github.com/JaimeStill/callqa/pkg/routes"
)

// Handler provides HTTP endpoints for call operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, pagination config, and request body limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxBodySize int64,
) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "calls"),
		pagination:  pagination,
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for call endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/calls",
		Tags:    []string{"Calls"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: spec.List},
			{Method: "POST", Pattern: "/search", Handler: h.Search, OpenAPI: spec.Search},
			{Method: "GET", Pattern: "/export", Handler: h.Export, OpenAPI: spec.Export},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find, OpenAPI: spec.Find},
			{Method: "GET", Pattern: "/{id}/recording", Handler: h.Recording, OpenAPI: spec.Recording},
			{Method: "PUT", Pattern: "/{id}/evaluation", Handler: h.Evaluate, OpenAPI: spec.Evaluate},
		},
	}
}

// List returns a page of calls selected by query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	h.respondPage(w, r, page, filters)
}

// Search accepts a JSON body carrying pagination, sort, and filter fields
// and returns the matching page of calls.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidFilter, err))
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var page pagination.PageRequest
	if err := json.Unmarshal(body, &page); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidFilter, err))
		return
	}

	var filters Filters
	if err := json.Unmarshal(body, &filters); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if len(page.Sort) == 0 {
		var pair struct {
			SortBy    string `json:"sort_by"`
			SortOrder string `json:"sort_order"`
		}
		if err := json.Unmarshal(body, &pair); err == nil {
			page.Sort = pagination.SortFromPair(pair.SortBy, pair.SortOrder)
		}
	}

	page.Normalize(h.pagination)
	h.respondPage(w, r, page, filters)
}

// Export writes every call selected by the query parameter filters as an XLSX workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	sort := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination).Sort

	calls, err := h.sys.All(r.Context(), filters, sort)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	xl, err := buildWorkbook(calls)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	defer xl.Close()

	filename := fmt.Sprintf("calls-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := xl.Write(w); err != nil {
		h.logger.Error("export write failed", "error", err)
	}
}

// Find returns a single call by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	call, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, call)
}

// Recording streams the call's audio recording from blob storage.
func (h *Handler) Recording(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	blob, err := h.sys.Recording(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("recording stream interrupted", "id", id, "error", err)
	}
}

// Evaluate records a human evaluation for the call and returns the updated call.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	var cmd EvaluateCommand
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodySize)).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidEvaluation, err))
		return
	}

	call, err := h.sys.Evaluate(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, call)
}

func (h *Handler) respondPage(
	w http.ResponseWriter,
	r *http.Request,
	page pagination.PageRequest,
	filters Filters,
) {
	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SortKeys returns the accepted public sort keys in lexical order.
func SortKeys() []string {
	return slices.Sorted(maps.Keys(sortKeys))
}
