package planner

import "math"

// Energy density in kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// RoundingNote is attached to MacroTargets when the macro calories drift from the target.
const RoundingNote = "Macros rounded; calories approximate."

// MacroTargets is the daily calorie target and macro split.
type MacroTargets struct {
	Calories int    `json:"calories"`
	ProteinG int    `json:"proteinG"`
	CarbsG   int    `json:"carbsG"`
	FatG     int    `json:"fatG"`
	BMR      int    `json:"bmr"`
	TDEE     int    `json:"tdee"`
	Note     string `json:"note"`
}

type goalFactors struct {
	calories     float64
	proteinPerKg float64
	fatPerKg     float64
}

var macroFactors = map[Goal]goalFactors{
	GoalFatLoss:    {calories: 0.85, proteinPerKg: 1.8, fatPerKg: 0.8},
	GoalMuscleGain: {calories: 1.08, proteinPerKg: 1.6, fatPerKg: 0.8},
	GoalEndurance:  {calories: 1.05, proteinPerKg: 1.4, fatPerKg: 0.7},
	GoalGeneral:    {calories: 1.00, proteinPerKg: 1.6, fatPerKg: 0.8},
}

// AllocateMacros derives calories and macros from the profile's goal and energy estimate.
// It returns nil when energy cannot be estimated.
func AllocateMacros(p Profile) *MacroTargets {
	energy := EstimateEnergy(p)
	if energy == nil || p.WeightKg == nil {
		return nil
	}

	f, ok := macroFactors[p.Goal]
	if !ok {
		f = macroFactors[GoalGeneral]
	}

	weight := float64(*p.WeightKg)
	calories := int(math.Round(float64(energy.TDEE) * f.calories))
	protein := int(math.Round(weight * f.proteinPerKg))
	fat := int(math.Round(weight * f.fatPerKg))

	carbKcal := max(0, calories-protein*kcalPerGramProtein-fat*kcalPerGramFat)
	carbs := int(math.Round(float64(carbKcal) / kcalPerGramCarbs))

	m := &MacroTargets{
		Calories: calories,
		ProteinG: protein,
		CarbsG:   carbs,
		FatG:     fat,
		BMR:      energy.BMR,
		TDEE:     energy.TDEE,
	}
	if m.Kcal() != calories {
		m.Note = RoundingNote
	}
	return m
}

// Kcal returns the calories supplied by the macro grams.
func (m MacroTargets) Kcal() int {
	return m.ProteinG*kcalPerGramProtein + m.CarbsG*kcalPerGramCarbs + m.FatG*kcalPerGramFat
}
