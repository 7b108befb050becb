package planner

import "time"

// Advisory text.
const (
	CautionMissingMetrics = "Add age/height/weight for calorie + macro targets."
	CautionInjuries       = "Injuries/constraints noted—consider professional guidance if pain is involved."

	Disclaimer = "This is a general, educational plan—no medical advice. " +
		"If you have a medical condition or pain, talk to a qualified professional."
)

var (
	fullGuidelines = []string{
		"Protein: spread across 3–5 meals; include 25–40g per meal.",
		"Fiber: target 25–35g/day (fruits, veg, legumes, whole grains).",
		"Hydration: 30–40 ml/kg/day; more if sweating heavily.",
		"Sleep: target 7–9 hours; keep wake time consistent.",
	}
	missingDataGuidelines = []string{
		"Add age/height/weight to get calorie + macro targets.",
		"Prioritize protein + plants + water; keep portions consistent.",
	}
)

// Nutrition is the nutrition section of a plan. Numeric targets are nil when
// body metrics are missing.
type Nutrition struct {
	Calories   *int     `json:"calories"`
	ProteinG   *int     `json:"proteinG"`
	CarbsG     *int     `json:"carbsG"`
	FatG       *int     `json:"fatG"`
	BMR        *int     `json:"bmr"`
	TDEE       *int     `json:"tdee"`
	Note       string   `json:"note,omitempty"`
	Guidelines []string `json:"guidelines"`
}

// Available reports whether calorie and macro targets were computed.
func (n Nutrition) Available() bool {
	return n.Calories != nil
}

// Plan is a generated training and nutrition plan.
type Plan struct {
	CreatedAt  time.Time `json:"createdAt"`
	Profile    Profile   `json:"profile"`
	Nutrition  Nutrition `json:"nutrition"`
	Training   Week      `json:"training"`
	Cautions   []string  `json:"cautions"`
	Disclaimer string    `json:"disclaimer"`
}

// GeneratePlan builds a plan stamped with the current time.
func GeneratePlan(raw RawProfile) Plan {
	return GeneratePlanAt(raw, time.Now().UTC())
}

// GeneratePlanAt builds a plan stamped with now.
func GeneratePlanAt(raw RawProfile, now time.Time) Plan {
	p := Normalize(raw)

	cautions := []string{}
	if !p.HasBodyMetrics() {
		cautions = append(cautions, CautionMissingMetrics)
	}
	if p.Injuries != "" {
		cautions = append(cautions, CautionInjuries)
	}

	return Plan{
		CreatedAt:  now,
		Profile:    p,
		Nutrition:  nutritionFor(AllocateMacros(p)),
		Training:   BuildWeek(p),
		Cautions:   cautions,
		Disclaimer: Disclaimer,
	}
}

func nutritionFor(m *MacroTargets) Nutrition {
	if m == nil {
		return Nutrition{Guidelines: append([]string(nil), missingDataGuidelines...)}
	}
	return Nutrition{
		Calories:   intPtr(m.Calories),
		ProteinG:   intPtr(m.ProteinG),
		CarbsG:     intPtr(m.CarbsG),
		FatG:       intPtr(m.FatG),
		BMR:        intPtr(m.BMR),
		TDEE:       intPtr(m.TDEE),
		Note:       m.Note,
		Guidelines: append([]string(nil), fullGuidelines...),
	}
}

func intPtr(v int) *int { return &v }
