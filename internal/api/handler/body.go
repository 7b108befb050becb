package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/telemetry"
)

// BodyHandler handles body measurement log endpoints.
type BodyHandler struct {
	service *body.Service
	metrics *telemetry.DomainMetrics
	logger  zerolog.Logger
}

// NewBodyHandler creates a new BodyHandler. metrics may be nil.
func NewBodyHandler(service *body.Service, metrics *telemetry.DomainMetrics, logger zerolog.Logger) *BodyHandler {
	return &BodyHandler{service: service, metrics: metrics, logger: logger}
}

// ListEntries handles GET /v1/me/body - newest first, cursor paginated.
func (h *BodyHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit, fieldErrors := queryInt(r, "limit")
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrors)
		return
	}

	page, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()), limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, page)
}

// CreateEntry handles POST /v1/me/body.
func (h *BodyHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var input models.BodyEntryCreateRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecordLogWritten(r.Context(), "body")
	response.Created(w, r, "/v1/me/body/"+created.ID, created)
}

// DeleteEntry handles DELETE /v1/me/body/{entryId}.
func (h *BodyHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "entryId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}
