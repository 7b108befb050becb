package planner

// Scheme is a set/rep/rest prescription rendered as display strings.
type Scheme struct {
	Sets string `json:"sets"`
	Reps string `json:"reps"`
	Rest string `json:"rest"`
}

var (
	enduranceScheme = Scheme{Sets: "2–3", Reps: "12–20", Rest: "45–75s"}
	fatLossScheme   = Scheme{Sets: "2–4", Reps: "8–15", Rest: "60–90s"}

	experienceSchemes = map[Experience]Scheme{
		ExperienceAdvanced:     {Sets: "3–5", Reps: "5–10", Rest: "90–150s"},
		ExperienceIntermediate: {Sets: "3–4", Reps: "6–12", Rest: "75–120s"},
		ExperienceBeginner:     {Sets: "2–3", Reps: "8–12", Rest: "60–90s"},
	}
)

// SchemeFor resolves the rep scheme. Endurance and fat loss goals take
// precedence over experience.
func SchemeFor(exp Experience, goal Goal) Scheme {
	switch goal {
	case GoalEndurance:
		return enduranceScheme
	case GoalFatLoss:
		return fatLossScheme
	}
	if s, ok := experienceSchemes[exp]; ok {
		return s
	}
	return experienceSchemes[ExperienceBeginner]
}

// CardioFor returns the weekly cardio prescription.
func CardioFor(goal Goal, sessionMinutes int) string {
	switch goal {
	case GoalMuscleGain:
		if sessionMinutes >= 60 {
			return "Optional: 1–2x/week Zone 2 (20–30 min) for recovery."
		}
		return "Optional: light walks on rest days."
	case GoalEndurance:
		return "2–4x/week: Zone 2 (30–45 min) + 1 interval day."
	case GoalFatLoss:
		return "2–3x/week: Zone 2 (25–40 min) + 8–12k steps/day target."
	default:
		return "2x/week: Zone 2 (20–30 min) + daily walks."
	}
}

var progressionRules = []string{
	"Pick a weight that leaves ~2–3 reps in reserve (RIR).",
	"When you hit the top of the rep range for all sets, add 2–5% load next time.",
	"If energy is low, keep the plan but reduce sets by 1 (minimum effective dose).",
}
