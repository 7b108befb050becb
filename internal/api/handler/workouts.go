package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/telemetry"
	"github.com/fitplan/fitplan/internal/workout"
)

// WorkoutHandler handles workout log endpoints.
type WorkoutHandler struct {
	service *workout.Service
	metrics *telemetry.DomainMetrics
	logger  zerolog.Logger
}

// NewWorkoutHandler creates a new WorkoutHandler. metrics may be nil.
func NewWorkoutHandler(service *workout.Service, metrics *telemetry.DomainMetrics, logger zerolog.Logger) *WorkoutHandler {
	return &WorkoutHandler{service: service, metrics: metrics, logger: logger}
}

// ListWorkouts handles GET /v1/me/workouts - newest first, cursor paginated.
func (h *WorkoutHandler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
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

// CreateWorkout handles POST /v1/me/workouts.
func (h *WorkoutHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	var input models.WorkoutCreateRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), &input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecordLogWritten(r.Context(), "workout")
	response.Created(w, r, "/v1/me/workouts/"+created.ID, created)
}

// DeleteWorkout handles DELETE /v1/me/workouts/{workoutId}.
func (h *WorkoutHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "workoutId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.NoContent(w, r)
}
