// Package handler provides HTTP handlers for the FitPlan API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/auth"
	"github.com/fitplan/fitplan/internal/backup"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/workout"
)

// maxBodyBytes caps JSON request bodies. Backups are the largest payload.
const maxBodyBytes = 4 << 20

// decodeJSON decodes the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, []models.FieldError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, []models.FieldError{{Field: name, Message: "must be a non-negative integer", Code: models.CodeInvalid}}
	}
	return v, nil
}

// writeError maps a service error to a problem response.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.Validation(w, r, validationErr)
	case errors.Is(err, profile.ErrProfileNotFound):
		response.NotFound(w, r, "no profile stored")
	case errors.Is(err, workout.ErrWorkoutNotFound):
		response.NotFound(w, r, "workout not found")
	case errors.Is(err, body.ErrEntryNotFound):
		response.NotFound(w, r, "body entry not found")
	case errors.Is(err, auth.ErrEmailTaken):
		response.Conflict(w, r, "email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		response.Unauthorized(w, r, "invalid email or password")
	case errors.Is(err, auth.ErrRefreshTokenExpired):
		response.Unauthorized(w, r, "refresh token has expired")
	case errors.Is(err, auth.ErrInvalidRefreshToken), errors.Is(err, auth.ErrUserNotFound):
		response.Unauthorized(w, r, "invalid refresh token")
	case errors.Is(err, backup.ErrUnsupportedVersion):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, backup.ErrInvalidSnapshot):
		response.BadRequest(w, r, "snapshot could not be decoded", nil)
	default:
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.InternalError(w, r, "an unexpected error occurred")
	}
}

func outOfRange(field, message string) models.FieldError {
	return models.FieldError{Field: field, Message: message, Code: models.CodeOutOfRange}
}
