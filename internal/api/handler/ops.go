package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/featureflags"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
	flags     *featureflags.Service
}

// NewOpsHandler creates a new OpsHandler. db is nil when running on in-memory storage.
func NewOpsHandler(version, buildTime string, db Pinger, flags *featureflags.Service) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		flags:     flags,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]string{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	})
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	db := h.checkDatabase(r.Context())
	if db.Status != models.HealthStatusOK {
		response.ServiceUnavailable(w, r, "database unreachable")
		return
	}
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	})
}

// SystemStatus handles GET /v1/ops/status - subsystem status and active flags.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	db := h.checkDatabase(r.Context())

	status := models.SystemStatus{
		Status:     db.Status,
		Time:       models.Timestamp(time.Now()),
		Subsystems: []models.SubsystemStatus{db},
	}
	if db.Status == models.HealthStatusFail {
		status.Status = models.HealthStatusDegraded
	}
	if h.flags != nil {
		status.Flags = h.flags.Active(r.Context())
	}
	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) checkDatabase(ctx context.Context) models.SubsystemStatus {
	if h.db == nil {
		detail := "in-memory storage"
		return models.SubsystemStatus{Name: "database", Status: models.HealthStatusOK, Detail: &detail}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		detail := err.Error()
		return models.SubsystemStatus{Name: "database", Status: models.HealthStatusFail, Detail: &detail}
	}
	return models.SubsystemStatus{Name: "database", Status: models.HealthStatusOK}
}
