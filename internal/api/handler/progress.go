package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/featureflags"
	"github.com/fitplan/fitplan/internal/progress"
)

// ProgressHandler handles the progress report endpoint.
type ProgressHandler struct {
	service *progress.Service
	flags   *featureflags.Service
	logger  zerolog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(service *progress.Service, flags *featureflags.Service, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{service: service, flags: flags, logger: logger}
}

// GetProgress handles GET /v1/me/progress?weeks=N - weekly workout totals and weight trend.
// Without weeks the progress_weeks flag decides the window.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	weeks, fieldErrors := queryInt(r, "weeks")
	if len(fieldErrors) == 0 && weeks > progress.MaxWeeks {
		fieldErrors = append(fieldErrors, outOfRange("weeks", "must be at most 52"))
	}
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid query parameters", fieldErrors)
		return
	}
	if weeks == 0 && h.flags != nil {
		weeks = h.flags.ProgressWeeks(r.Context())
	}

	report, err := h.service.Report(r.Context(), middleware.GetUserID(r.Context()), weeks)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, report)
}
