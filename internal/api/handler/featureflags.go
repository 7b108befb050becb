package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/featureflags"
)

// FeatureFlagsHandler handles feature flag administration.
type FeatureFlagsHandler struct {
	service *featureflags.Service
	logger  zerolog.Logger
}

// NewFeatureFlagsHandler creates a new FeatureFlagsHandler.
func NewFeatureFlagsHandler(service *featureflags.Service, logger zerolog.Logger) *FeatureFlagsHandler {
	return &FeatureFlagsHandler{service: service, logger: logger}
}

// ListFeatureFlags handles GET /v1/admin/feature-flags - all flags with current values.
func (h *FeatureFlagsHandler) ListFeatureFlags(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.List(r.Context()))
}

// UpsertFeatureFlags handles PUT /v1/admin/feature-flags - update one or more flags.
func (h *FeatureFlagsHandler) UpsertFeatureFlags(w http.ResponseWriter, r *http.Request) {
	var req featureflags.FlagUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.Update(r.Context(), &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, h.service.List(r.Context()))
}

// InvalidateCache handles POST /v1/admin/feature-flags/invalidate - drop cached flag values.
func (h *FeatureFlagsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.service.InvalidateCache()
	response.NoContent(w, r)
}
