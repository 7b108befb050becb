package planner

import "math"

// EnergyEstimate holds resting and total daily energy expenditure in kcal/day.
type EnergyEstimate struct {
	BMR  int `json:"bmr"`
	TDEE int `json:"tdee"`
}

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityHigh:      1.725,
}

const defaultActivityMultiplier = 1.375

// ActivityMultiplier returns the TDEE multiplier for an activity level.
func ActivityMultiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return defaultActivityMultiplier
}

// EstimateEnergy computes BMR (Mifflin-St Jeor) and TDEE.
// It returns nil unless weight, height and age are all present.
func EstimateEnergy(p Profile) *EnergyEstimate {
	if !p.HasBodyMetrics() || *p.WeightKg == 0 || *p.HeightCm == 0 || *p.Age == 0 {
		return nil
	}

	base := 10*float64(*p.WeightKg) + 6.25*float64(*p.HeightCm) - 5*float64(*p.Age)
	bmr := base + 5
	if p.Sex == SexFemale {
		bmr = base - 161
	}
	tdee := bmr * ActivityMultiplier(p.ActivityLevel)

	return &EnergyEstimate{
		BMR:  int(math.Round(bmr)),
		TDEE: int(math.Round(tdee)),
	}
}
