package handler

import (
	"net/http"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/api/response"
	"github.com/fitplan/fitplan/internal/planner"
	"github.com/fitplan/fitplan/internal/workout"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct{}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// GetEnums handles GET /v1/metadata/enums - accepted values and numeric ranges.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	days, minutes := planner.DefaultDaysPerWeek, planner.DefaultSessionMinutes
	response.JSON(w, r, http.StatusOK, models.Enums{
		Sexes: []planner.Sex{planner.SexMale, planner.SexFemale},
		Goals: []planner.Goal{
			planner.GoalGeneral, planner.GoalFatLoss, planner.GoalMuscleGain, planner.GoalEndurance,
		},
		Experience: []planner.Experience{
			planner.ExperienceBeginner, planner.ExperienceIntermediate, planner.ExperienceAdvanced,
		},
		Equipment: []planner.Equipment{
			planner.EquipmentNone, planner.EquipmentDumbbells, planner.EquipmentFullGym,
		},
		ActivityLevels: []planner.ActivityLevel{
			planner.ActivitySedentary, planner.ActivityLight, planner.ActivityModerate, planner.ActivityHigh,
		},
		WorkoutTypes: []string{
			string(workout.TypeStrength), string(workout.TypeCardio), string(workout.TypeMobility),
		},
		Age:            models.Range{Min: planner.MinAge, Max: planner.MaxAge},
		HeightCm:       models.Range{Min: planner.MinHeightCm, Max: planner.MaxHeightCm},
		WeightKg:       models.Range{Min: planner.MinWeightKg, Max: planner.MaxWeightKg},
		DaysPerWeek:    models.Range{Min: planner.MinDaysPerWeek, Max: planner.MaxDaysPerWeek, Default: &days},
		SessionMinutes: models.Range{Min: planner.MinSessionMinutes, Max: planner.MaxSessionMinutes, Default: &minutes},
	})
}
