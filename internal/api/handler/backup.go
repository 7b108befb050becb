package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/backup"
	"github.com/fitplan/fitplan/internal/featureflags"
)

// BackupHandler handles data export and import.
type BackupHandler struct {
	service *backup.Service
	flags   *featureflags.Service
	logger  zerolog.Logger
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(service *backup.Service, flags *featureflags.Service, logger zerolog.Logger) *BackupHandler {
	return &BackupHandler{service: service, flags: flags, logger: logger}
}

// Export handles GET /v1/me/export - download a snapshot of the user's data.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Export(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="fitplan-backup.json"`)
	response.JSON(w, r, http.StatusOK, snap)
}

// Import handles POST /v1/me/import - replace the user's data with a snapshot.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.flags != nil && h.flags.IsImportDisabled(r.Context()) {
		response.ServiceUnavailable(w, r, "import is temporarily disabled")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(w, r, "snapshot is too large", nil)
			return
		}
		response.BadRequest(w, r, "could not read request body", nil)
		return
	}

	userID := middleware.GetUserID(r.Context())
	result, err := h.service.Import(r.Context(), userID, data)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.Info().
		Str("user_id", userID).
		Int("source_version", result.SourceVersion).
		Int("workouts", result.Workouts).
		Int("body_entries", result.BodyEntries).
		Int("dropped", result.Dropped).
		Msg("snapshot imported")
	response.JSON(w, r, http.StatusOK, result)
}
