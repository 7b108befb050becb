package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fitplan/fitplan/internal/api/middleware"
	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/featureflags"
	"github.com/fitplan/fitplan/internal/planner"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/telemetry"
)

// PlanHandler handles plan generation and reference endpoints.
type PlanHandler struct {
	profileService *profile.Service
	flags          *featureflags.Service
	metrics        *telemetry.DomainMetrics
	logger         zerolog.Logger
	now            func() time.Time
}

// NewPlanHandler creates a new PlanHandler. metrics may be nil.
func NewPlanHandler(profiles *profile.Service, flags *featureflags.Service, metrics *telemetry.DomainMetrics, logger zerolog.Logger) *PlanHandler {
	return &PlanHandler{
		profileService: profiles,
		flags:          flags,
		metrics:        metrics,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// PreviewPlan handles POST /v1/plans/preview - generate a plan from an unsaved profile.
func (h *PlanHandler) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	if h.flags != nil && h.flags.IsPlanPreviewDisabled(r.Context()) {
		response.ServiceUnavailable(w, r, "plan preview is temporarily disabled")
		return
	}

	var raw planner.RawProfile
	if !decodeJSON(w, r, &raw) {
		return
	}

	plan := planner.GeneratePlanAt(raw, h.now())
	h.metrics.RecordPlanGenerated(r.Context(), telemetry.SourcePreview, string(plan.Training.Split))
	response.JSON(w, r, http.StatusOK, plan)
}

// GetMyPlan handles GET /v1/me/plan - generate a plan from the stored profile.
func (h *PlanHandler) GetMyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.profileService.Plan(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecordPlanGenerated(r.Context(), telemetry.SourceProfile, string(plan.Training.Split))
	response.JSON(w, r, http.StatusOK, plan)
}

// EstimateEnergy handles POST /v1/energy - BMR, TDEE and macro targets for a raw profile.
func (h *PlanHandler) EstimateEnergy(w http.ResponseWriter, r *http.Request) {
	var raw planner.RawProfile
	if !decodeJSON(w, r, &raw) {
		return
	}

	p := planner.Normalize(raw)
	response.JSON(w, r, http.StatusOK, models.EnergyResponse{
		Profile: p,
		Energy:  planner.EstimateEnergy(p),
		Macros:  planner.AllocateMacros(p),
	})
}

// GetCatalog handles GET /v1/catalog/{equipment} - exercise pools for an equipment tier.
func (h *PlanHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	equipment := planner.Equipment(chi.URLParam(r, "equipment"))
	if !equipment.Valid() {
		response.NotFound(w, r, "unknown equipment tier "+string(equipment))
		return
	}

	response.JSON(w, r, http.StatusOK, models.CatalogResponse{
		Equipment: equipment,
		Patterns:  planner.CatalogFor(equipment),
	})
}
