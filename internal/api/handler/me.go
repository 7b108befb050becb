package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/auth"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/workout"
)

// MeHandler handles account endpoints.
type MeHandler struct {
	authService    *auth.Service
	profileService *profile.Service
	workoutService *workout.Service
	bodyService    *body.Service
	logger         zerolog.Logger
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(authService *auth.Service, profiles *profile.Service, workouts *workout.Service, bodyLog *body.Service, logger zerolog.Logger) *MeHandler {
	return &MeHandler{
		authService:    authService,
		profileService: profiles,
		workoutService: workouts,
		bodyService:    bodyLog,
		logger:         logger,
	}
}

// GetMe handles GET /v1/me - the signed-in account.
func (h *MeHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.NotFound(w, r, "account not found")
			return
		}
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, r, http.StatusOK, user)
}

// DeleteMe handles DELETE /v1/me - remove the account and all of its data.
func (h *MeHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if err := h.workoutService.DeleteAll(ctx, userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.bodyService.DeleteAll(ctx, userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.profileService.Delete(ctx, userID); err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.authService.DeleteAccount(ctx, userID); err != nil && !errors.Is(err, auth.ErrUserNotFound) {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info().Str("user_id", userID).Msg("account deleted")
	response.NoContent(w, r)
}
