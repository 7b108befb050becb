package planner

// itemRef resolves to one block item. A zero Pattern means Text is used verbatim;
// otherwise the item is the catalog pick at Index followed by Suffix.
type itemRef struct {
	Pattern Pattern
	Index   int
	Suffix  string
	Text    string
}

type blockRef struct {
	Label string
	Items []itemRef
}

// slot is one position in a canonical week. Recovery slots carry no content.
type slot struct {
	Kind   DayKind
	Title  string
	Focus  string
	Blocks []blockRef
}

func ex(p Pattern, idx int) itemRef { return itemRef{Pattern: p, Index: idx} }

func exSuffix(p Pattern, idx int, suffix string) itemRef {
	return itemRef{Pattern: p, Index: idx, Suffix: suffix}
}

func text(s string) itemRef { return itemRef{Text: s} }

func primary(items ...itemRef) blockRef   { return blockRef{Label: "Main", Items: items} }
func accessory(items ...itemRef) blockRef { return blockRef{Label: "Accessory", Items: items} }

func strength(title, focus string, blocks ...blockRef) slot {
	return slot{Kind: DayStrength, Title: title, Focus: focus, Blocks: blocks}
}

var rest = slot{Kind: DayRecovery}

const (
	finisher     = " 8–12 min (easy/moderate)"
	easy10       = " 10 min easy"
	easy10to15   = " 10–15 min easy"
	zone2Session = " 25–40 min Zone 2"
)

func fullBody(title, focus string, main1, main2, main3, acc1, acc2, acc3, cardio itemRef) slot {
	return strength(title, focus,
		primary(main1, main2, main3),
		accessory(acc1, acc2, acc3),
		blockRef{Label: "Finisher", Items: []itemRef{cardio}},
	)
}

// weekTemplates holds the canonical seven-slot week for each split.
var weekTemplates = map[Split][7]slot{
	SplitFullBody: {
		fullBody("Full Body A", "Squat + Push + Pull",
			ex(PatternSquat, 0), ex(PatternPush, 0), ex(PatternPull, 0),
			ex(PatternHinge, 0), ex(PatternShoulders, 1), ex(PatternCore, 0),
			exSuffix(PatternCardio, 0, finisher)),
		rest,
		fullBody("Full Body B", "Hinge + Pull + Push",
			ex(PatternHinge, 1), ex(PatternPull, 1), ex(PatternPush, 1),
			ex(PatternSquat, 1), ex(PatternShoulders, 0), ex(PatternCore, 1),
			exSuffix(PatternCardio, 1, finisher)),
		rest,
		fullBody("Full Body C", "Squat + Upper",
			ex(PatternSquat, 2), ex(PatternPush, 2), ex(PatternPull, 2),
			ex(PatternHinge, 2), ex(PatternShoulders, 2), ex(PatternCore, 2),
			exSuffix(PatternCardio, 2, finisher)),
		rest,
		rest,
	},
	SplitUpperLower: {
		strength("Upper 1", "Push + Pull",
			primary(ex(PatternPush, 0), ex(PatternPull, 0), ex(PatternShoulders, 0)),
			accessory(ex(PatternPull, 1), ex(PatternCore, 0))),
		strength("Lower 1", "Squat + Hinge",
			primary(ex(PatternSquat, 0), ex(PatternHinge, 0)),
			accessory(ex(PatternCore, 1), exSuffix(PatternCardio, 0, easy10))),
		rest,
		strength("Upper 2", "Pull + Push",
			primary(ex(PatternPull, 2), ex(PatternPush, 1), ex(PatternShoulders, 1)),
			accessory(ex(PatternCore, 2))),
		strength("Lower 2", "Hinge + Squat",
			primary(ex(PatternHinge, 1), ex(PatternSquat, 1)),
			accessory(exSuffix(PatternCardio, 1, easy10))),
		rest,
		rest,
	},
	SplitUpperLowerPlus: {
		strength("Upper 1", "Push + Pull",
			primary(ex(PatternPush, 0), ex(PatternPull, 0), ex(PatternShoulders, 0)),
			accessory(ex(PatternCore, 0))),
		strength("Lower 1", "Squat + Hinge",
			primary(ex(PatternSquat, 0), ex(PatternHinge, 0)),
			accessory(ex(PatternCore, 1))),
		rest,
		strength("Upper 2", "Pull + Push",
			primary(ex(PatternPull, 1), ex(PatternPush, 1), ex(PatternShoulders, 1)),
			accessory(ex(PatternCore, 2))),
		strength("Lower 2", "Hinge + Squat",
			primary(ex(PatternHinge, 1), ex(PatternSquat, 1)),
			accessory(exSuffix(PatternCardio, 0, easy10to15))),
		strength("Conditioning", "Cardio + Mobility",
			blockRef{Label: "Cardio", Items: []itemRef{exSuffix(PatternCardio, 2, zone2Session)}},
			blockRef{Label: "Mobility", Items: []itemRef{text("Hips + ankles 6 min"), text("T-spine + shoulders 6 min")}}),
		rest,
	},
	SplitPPL: {
		strength("Push", "Chest + Shoulders + Triceps",
			primary(ex(PatternPush, 0), ex(PatternShoulders, 0)),
			accessory(ex(PatternPush, 1), ex(PatternCore, 0))),
		strength("Pull", "Back + Biceps",
			primary(ex(PatternPull, 0), ex(PatternPull, 1)),
			accessory(ex(PatternCore, 1))),
		strength("Legs", "Squat + Hinge",
			primary(ex(PatternSquat, 0), ex(PatternHinge, 0)),
			accessory(ex(PatternSquat, 1), ex(PatternCore, 2))),
		rest,
		strength("Push (light)", "Hypertrophy + Pump",
			primary(ex(PatternPush, 2), ex(PatternShoulders, 1)),
			accessory(ex(PatternCore, 0))),
		strength("Pull (light)", "Hypertrophy + Posture",
			primary(ex(PatternPull, 2), ex(PatternShoulders, 2)),
			accessory(ex(PatternCore, 1))),
		strength("Legs (light)", "Volume + Cardio",
			primary(ex(PatternHinge, 1), ex(PatternSquat, 2)),
			accessory(exSuffix(PatternCardio, 1, easy10to15))),
	},
}
