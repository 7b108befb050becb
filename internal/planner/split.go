package planner

// Split is a weekly training archetype.
type Split string

// Split values.
const (
	SplitFullBody       Split = "full_body"
	SplitUpperLower     Split = "upper_lower"
	SplitUpperLowerPlus Split = "upper_lower_plus"
	SplitPPL            Split = "ppl"
)

// SelectSplit maps training days per week to a split.
func SelectSplit(daysPerWeek int) Split {
	switch {
	case daysPerWeek <= 3:
		return SplitFullBody
	case daysPerWeek == 4:
		return SplitUpperLower
	case daysPerWeek == 5:
		return SplitUpperLowerPlus
	default:
		return SplitPPL
	}
}
