package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/planner"
)

func TestSelectSplit(t *testing.T) {
	tests := []struct {
		days int
		want planner.Split
	}{
		{1, planner.SplitFullBody},
		{2, planner.SplitFullBody},
		{3, planner.SplitFullBody},
		{4, planner.SplitUpperLower},
		{5, planner.SplitUpperLowerPlus},
		{6, planner.SplitPPL},
		{7, planner.SplitPPL},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, planner.SelectSplit(tt.days), "days=%d", tt.days)
	}
}

func TestCatalogFor(t *testing.T) {
	for _, eq := range []planner.Equipment{planner.EquipmentNone, planner.EquipmentDumbbells, planner.EquipmentFullGym} {
		c := planner.CatalogFor(eq)
		for _, p := range planner.Patterns {
			assert.Len(t, c[p], 3, "%s/%s", eq, p)
		}
	}

	gym := planner.CatalogFor(planner.EquipmentFullGym)
	assert.Equal(t, []string{"Back Squat", "Leg Press", "Goblet Squat"}, gym[planner.PatternSquat])

	gym[planner.PatternSquat][0] = "mutated"
	assert.Equal(t, "Back Squat", planner.CatalogFor(planner.EquipmentFullGym)[planner.PatternSquat][0])

	assert.Equal(t, planner.CatalogFor(planner.EquipmentNone), planner.CatalogFor("kettlebells"))
}

func TestSchemeFor(t *testing.T) {
	assert.Equal(t, planner.Scheme{Sets: "2–3", Reps: "12–20", Rest: "45–75s"},
		planner.SchemeFor(planner.ExperienceAdvanced, planner.GoalEndurance))
	assert.Equal(t, planner.Scheme{Sets: "2–4", Reps: "8–15", Rest: "60–90s"},
		planner.SchemeFor(planner.ExperienceAdvanced, planner.GoalFatLoss))
	assert.Equal(t, planner.Scheme{Sets: "3–5", Reps: "5–10", Rest: "90–150s"},
		planner.SchemeFor(planner.ExperienceAdvanced, planner.GoalMuscleGain))
	assert.Equal(t, planner.Scheme{Sets: "3–4", Reps: "6–12", Rest: "75–120s"},
		planner.SchemeFor(planner.ExperienceIntermediate, planner.GoalGeneral))
	assert.Equal(t, planner.Scheme{Sets: "2–3", Reps: "8–12", Rest: "60–90s"},
		planner.SchemeFor(planner.ExperienceBeginner, planner.GoalGeneral))
}

func TestCardioFor(t *testing.T) {
	assert.Equal(t, "Optional: 1–2x/week Zone 2 (20–30 min) for recovery.", planner.CardioFor(planner.GoalMuscleGain, 60))
	assert.Equal(t, "Optional: light walks on rest days.", planner.CardioFor(planner.GoalMuscleGain, 59))
	assert.Equal(t, "2–4x/week: Zone 2 (30–45 min) + 1 interval day.", planner.CardioFor(planner.GoalEndurance, 45))
	assert.Equal(t, "2–3x/week: Zone 2 (25–40 min) + 8–12k steps/day target.", planner.CardioFor(planner.GoalFatLoss, 45))
	assert.Equal(t, "2x/week: Zone 2 (20–30 min) + daily walks.", planner.CardioFor(planner.GoalGeneral, 45))
}

func TestBuildWeek_ActiveDayCount(t *testing.T) {
	// Canonical templates carry 3, 4, 5 and 6 active slots.
	want := map[int]int{2: 2, 3: 3, 4: 4, 5: 5, 6: 6}

	for days := planner.MinDaysPerWeek; days <= planner.MaxDaysPerWeek; days++ {
		for _, eq := range []string{"none", "dumbbells", "full_gym"} {
			p := planner.Normalize(planner.RawProfile{DaysPerWeek: planner.Num(float64(days)), Equipment: eq})
			w := planner.BuildWeek(p)

			require.Len(t, w.Days, 7)
			assert.LessOrEqual(t, w.ActiveDays(), days)
			assert.Equal(t, want[days], w.ActiveDays(), "days=%d equipment=%s", days, eq)
			for i, d := range w.Days {
				assert.Equal(t, planner.DayLabels[i], d.Day)
			}
		}
	}
}

func TestBuildWeek_FullBodyTwoDays(t *testing.T) {
	p := planner.Normalize(planner.RawProfile{DaysPerWeek: planner.Num(2), SessionMinutes: planner.Num(60), Injuries: "knee"})
	w := planner.BuildWeek(p)

	assert.Equal(t, planner.SplitFullBody, w.Split)
	kinds := make([]planner.DayKind, 0, 7)
	for _, d := range w.Days {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []planner.DayKind{
		planner.DayStrength, planner.DayRecovery, planner.DayStrength, planner.DayRecovery,
		planner.DayRecovery, planner.DayRecovery, planner.DayRecovery,
	}, kinds)

	// Full Body C is demoted on Fri.
	fri := w.Days[4]
	assert.Equal(t, "Recovery", fri.Title)
	assert.Equal(t, 25, fri.DurationMinutes)
	assert.Empty(t, fri.Notes)
	assert.Nil(t, fri.Scheme)

	mon := w.Days[0]
	assert.Equal(t, "Full Body A", mon.Title)
	assert.Equal(t, 60, mon.DurationMinutes)
	assert.Equal(t, "Constraints: knee", mon.Notes)
	require.NotNil(t, mon.Scheme)
	assert.Equal(t, []planner.Block{
		{Label: "Main", Items: []string{"Air Squat", "Push-ups", "Doorway Row (towel)"}},
		{Label: "Accessory", Items: []string{"Hip Hinge", "Y-T-W Raises", "Plank"}},
		{Label: "Finisher", Items: []string{"Brisk Walk 8–12 min (easy/moderate)"}},
	}, mon.Blocks)
}

func TestBuildWeek_UpperLowerPlusConditioning(t *testing.T) {
	p := planner.Normalize(planner.RawProfile{DaysPerWeek: planner.Num(5), Equipment: "full_gym", SessionMinutes: planner.Num(50)})
	w := planner.BuildWeek(p)

	assert.Equal(t, planner.SplitUpperLowerPlus, w.Split)
	sat := w.Days[5]
	assert.Equal(t, "Sat", sat.Day)
	assert.Equal(t, planner.DayStrength, sat.Kind)
	assert.Equal(t, "Conditioning", sat.Title)
	require.NotNil(t, sat.Scheme)
	assert.Equal(t, planner.SchemeFor(planner.ExperienceBeginner, planner.GoalGeneral), *sat.Scheme)
	assert.Equal(t, 50, sat.DurationMinutes)
	assert.Equal(t, []planner.Block{
		{Label: "Cardio", Items: []string{"Row Erg 25–40 min Zone 2"}},
		{Label: "Mobility", Items: []string{"Hips + ankles 6 min", "T-spine + shoulders 6 min"}},
	}, sat.Blocks)
}

func TestBuildWeek_PPLDumbbells(t *testing.T) {
	p := planner.Normalize(planner.RawProfile{DaysPerWeek: planner.Num(6), Equipment: "dumbbells", Experience: "advanced"})
	w := planner.BuildWeek(p)

	assert.Equal(t, planner.SplitPPL, w.Split)
	assert.Equal(t, 6, w.ActiveDays())
	assert.Equal(t, planner.DayRecovery, w.Days[3].Kind)

	sun := w.Days[6]
	assert.Equal(t, "Legs (light)", sun.Title)
	assert.Equal(t, []string{"Hip Hinge Good Morning", "DB Front Squat"}, sun.Blocks[0].Items)
	assert.Equal(t, []string{"Jog 10–15 min easy"}, sun.Blocks[1].Items)
	require.NotNil(t, sun.Scheme)
	assert.Equal(t, "3–5", sun.Scheme.Sets)
}

func TestBuildWeek_RecoveryDuration(t *testing.T) {
	p := planner.Normalize(planner.RawProfile{SessionMinutes: planner.Num(20)})
	w := planner.BuildWeek(p)

	rec := w.Days[1]
	assert.Equal(t, planner.DayRecovery, rec.Kind)
	assert.Equal(t, 20, rec.DurationMinutes)
	assert.Equal(t, "Mobility + easy movement", rec.Focus)
	assert.Equal(t, []planner.Block{
		{Label: "Walk", Items: []string{"Easy walk 20–30 min"}},
		{Label: "Mobility", Items: []string{"Hips + ankles 5 min", "Thoracic + shoulders 5 min"}},
	}, rec.Blocks)
}

func TestBuildWeek_Progression(t *testing.T) {
	w := planner.BuildWeek(planner.Normalize(planner.RawProfile{}))
	require.Len(t, w.Progression, 3)
	assert.Contains(t, w.Progression[0], "RIR")

	w.Progression[0] = "changed"
	assert.Contains(t, planner.BuildWeek(planner.Normalize(planner.RawProfile{})).Progression[0], "RIR")
}
