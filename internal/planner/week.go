package planner

// DayKind classifies a training day.
type DayKind string

// DayKind values.
const (
	DayStrength     DayKind = "strength"
	DayConditioning DayKind = "conditioning"
	DayRecovery     DayKind = "recovery"
)

// Active reports whether the day is a substantive training day.
func (k DayKind) Active() bool {
	return k == DayStrength || k == DayConditioning
}

// DayLabels are the labels of a week in order.
var DayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MaxRecoveryMinutes caps the duration of a recovery day.
const MaxRecoveryMinutes = 25

// Block is a labelled group of exercises within a day.
type Block struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

// TrainingDay describes one day of the week.
type TrainingDay struct {
	Kind            DayKind `json:"kind"`
	Day             string  `json:"day"`
	Title           string  `json:"title"`
	Focus           string  `json:"focus"`
	DurationMinutes int     `json:"durationMinutes"`
	Scheme          *Scheme `json:"scheme,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	Blocks          []Block `json:"blocks"`
}

// Week is the training section of a plan.
type Week struct {
	Split       Split          `json:"split"`
	Cardio      string         `json:"cardio"`
	Progression []string       `json:"progression"`
	Days        [7]TrainingDay `json:"days"`
}

// ActiveDays counts strength and conditioning days.
func (w Week) ActiveDays() int {
	n := 0
	for _, d := range w.Days {
		if d.Kind.Active() {
			n++
		}
	}
	return n
}

// BuildWeek assembles the canonical week for the profile's split and keeps
// only the first DaysPerWeek active slots. Later active slots become recovery.
func BuildWeek(p Profile) Week {
	split := SelectSplit(p.DaysPerWeek)
	catalog := catalogs[p.Equipment]
	if catalog == nil {
		catalog = catalogs[EquipmentNone]
	}
	scheme := SchemeFor(p.Experience, p.Goal)

	var notes string
	if p.Injuries != "" {
		notes = "Constraints: " + p.Injuries
	}

	w := Week{
		Split:       split,
		Cardio:      CardioFor(p.Goal, p.SessionMinutes),
		Progression: append([]string(nil), progressionRules...),
	}

	template := weekTemplates[split]
	active := 0
	for i, s := range template {
		var day TrainingDay
		if s.Kind.Active() && active < p.DaysPerWeek {
			active++
			day = activeDay(s, catalog, scheme, p.SessionMinutes)
			day.Notes = notes
		} else {
			day = recoveryDay(p.SessionMinutes)
		}
		day.Day = DayLabels[i]
		w.Days[i] = day
	}
	return w
}

func activeDay(s slot, c Catalog, scheme Scheme, sessionMinutes int) TrainingDay {
	day := TrainingDay{
		Kind:            s.Kind,
		Title:           s.Title,
		Focus:           s.Focus,
		DurationMinutes: sessionMinutes,
		Blocks:          make([]Block, 0, len(s.Blocks)),
	}
	if s.Kind == DayStrength {
		sc := scheme
		day.Scheme = &sc
	}
	for _, b := range s.Blocks {
		items := make([]string, 0, len(b.Items))
		for _, ref := range b.Items {
			items = append(items, ref.resolve(c))
		}
		day.Blocks = append(day.Blocks, Block{Label: b.Label, Items: items})
	}
	return day
}

func (r itemRef) resolve(c Catalog) string {
	if r.Pattern == "" {
		return r.Text
	}
	return c.pick(r.Pattern, r.Index) + r.Suffix
}

func recoveryDay(sessionMinutes int) TrainingDay {
	return TrainingDay{
		Kind:            DayRecovery,
		Title:           "Recovery",
		Focus:           "Mobility + easy movement",
		DurationMinutes: min(MaxRecoveryMinutes, sessionMinutes),
		Blocks: []Block{
			{Label: "Walk", Items: []string{"Easy walk 20–30 min"}},
			{Label: "Mobility", Items: []string{"Hips + ankles 5 min", "Thoracic + shoulders 5 min"}},
		},
	}
}
