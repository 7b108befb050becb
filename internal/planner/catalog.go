package planner

// Pattern is a movement pattern used to group exercises.
type Pattern string

// Pattern values.
const (
	PatternSquat     Pattern = "squat"
	PatternHinge     Pattern = "hinge"
	PatternPush      Pattern = "push"
	PatternPull      Pattern = "pull"
	PatternShoulders Pattern = "shoulders"
	PatternCore      Pattern = "core"
	PatternCardio    Pattern = "cardio"
)

// Patterns lists every pattern in display order.
var Patterns = []Pattern{
	PatternSquat, PatternHinge, PatternPush, PatternPull,
	PatternShoulders, PatternCore, PatternCardio,
}

// Catalog maps a movement pattern to an ordered pool of exercise names.
type Catalog map[Pattern][]string

var catalogs = map[Equipment]Catalog{
	EquipmentFullGym: {
		PatternSquat:     {"Back Squat", "Leg Press", "Goblet Squat"},
		PatternHinge:     {"Romanian Deadlift", "Deadlift (light)", "Hip Thrust"},
		PatternPush:      {"Bench Press", "Incline DB Press", "Push-ups"},
		PatternPull:      {"Lat Pulldown", "Barbell Row", "Cable Row"},
		PatternShoulders: {"Overhead Press", "DB Shoulder Press", "Lateral Raise"},
		PatternCore:      {"Dead Bug", "Plank", "Cable Chop"},
		PatternCardio:    {"Incline Walk", "Bike", "Row Erg"},
	},
	EquipmentDumbbells: {
		PatternSquat:     {"Goblet Squat", "Split Squat", "DB Front Squat"},
		PatternHinge:     {"DB Romanian Deadlift", "Hip Hinge Good Morning", "Glute Bridge"},
		PatternPush:      {"DB Floor Press", "Push-ups", "DB Incline Press (bench)"},
		PatternPull:      {"1-Arm DB Row", "Chest-Supported DB Row", "Band Row (if available)"},
		PatternShoulders: {"DB Shoulder Press", "Lateral Raise", "Rear Delt Fly"},
		PatternCore:      {"Plank", "Side Plank", "Hollow Hold"},
		PatternCardio:    {"Brisk Walk", "Jog", "Bike (if available)"},
	},
	EquipmentNone: {
		PatternSquat:     {"Air Squat", "Split Squat", "Step-ups"},
		PatternHinge:     {"Hip Hinge", "Single-Leg RDL (bodyweight)", "Glute Bridge"},
		PatternPush:      {"Push-ups", "Pike Push-ups", "Incline Push-ups"},
		PatternPull:      {"Doorway Row (towel)", "Isometric Row (towel)", "Prone Swimmer"},
		PatternShoulders: {"Pike Push-ups", "Y-T-W Raises", "Scapular Push-ups"},
		PatternCore:      {"Plank", "Dead Bug", "Hollow Hold"},
		PatternCardio:    {"Brisk Walk", "Intervals (walk/jog)", "Stairs"},
	},
}

// CatalogFor returns a copy of the exercise pools for an equipment tier.
// Unknown tiers get the bodyweight pools.
func CatalogFor(e Equipment) Catalog {
	src, ok := catalogs[e]
	if !ok {
		src = catalogs[EquipmentNone]
	}
	out := make(Catalog, len(src))
	for pattern, names := range src {
		out[pattern] = append([]string(nil), names...)
	}
	return out
}

// pick selects from a pool with wrap-around.
func (c Catalog) pick(p Pattern, idx int) string {
	pool := c[p]
	if len(pool) == 0 {
		return ""
	}
	return pool[idx%len(pool)]
}
