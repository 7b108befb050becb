package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/planner"
	"github.com/fitplan/fitplan/internal/profile"
)

// ProfileHandler handles the stored profile endpoints.
type ProfileHandler struct {
	profileService *profile.Service
	logger         zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *profile.Service, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// GetProfile handles GET /v1/me/profile - the stored profile with its energy estimate.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	resp, err := h.profileService.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, resp)
}

// UpsertProfile handles PUT /v1/me/profile - normalize and store a raw profile.
// Any JSON object is accepted; unusable fields fall back to defaults.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var raw planner.RawProfile
	if !decodeJSON(w, r, &raw) {
		return
	}

	resp, err := h.profileService.Upsert(r.Context(), middleware.GetUserID(r.Context()), raw)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, resp)
}

// DeleteProfile handles DELETE /v1/me/profile.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.profileService.Delete(r.Context(), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}
