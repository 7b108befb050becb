package backup_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/backup"
	"github.com/fitplan/fitplan/internal/body"
	"github.com/fitplan/fitplan/internal/planner"
	"github.com/fitplan/fitplan/internal/profile"
	"github.com/fitplan/fitplan/internal/workout"
)

type fixture struct {
	profiles *profile.Service
	workouts *workout.Service
	body     *body.Service
	svc      *backup.Service
}

func newFixture() *fixture {
	f := &fixture{
		profiles: profile.NewService(profile.NewInMemoryRepository()),
		workouts: workout.NewService(workout.NewInMemoryRepository()),
		body:     body.NewService(body.NewInMemoryRepository()),
	}
	f.svc = backup.NewService(f.profiles, f.workouts, f.body)
	return f
}

const legacyState = `{
	"updatedAt": "2025-11-02T09:12:44.120Z",
	"settings": {"units": "metric"},
	"profile": {
		"name": "Robin", "sex": "female", "age": "34", "heightCm": "168", "weightKg": "",
		"goal": "fat_loss", "experience": "intermediate", "daysPerWeek": 4,
		"sessionMinutes": 50, "equipment": "dumbbells", "activityLevel": "moderate",
		"injuries": "", "preferences": "mornings"
	},
	"generated": {"plan": null},
	"logs": {
		"workouts": [
			{"id": "1730538764120", "date": "2025-11-01", "title": "", "type": "cardio", "minutes": 30, "rpe": null, "notes": "", "createdAt": "2025-11-01T18:00:00.000Z"},
			{"id": "1730538764121", "date": "2025-11-02", "title": "Legs", "type": "strength", "minutes": "lots", "rpe": 8, "notes": ""},
			{"id": "1730538764122", "date": "2025-11-02", "title": "Walk", "type": "cardio", "minutes": 3, "rpe": null, "notes": ""}
		],
		"body": [
			{"id": "1730538764200", "date": "2025-11-01", "weightKg": 71.5, "waistCm": null, "notes": ""}
		]
	}
}`

func TestDecode_Legacy(t *testing.T) {
	decoded, err := backup.Decode([]byte(legacyState))
	require.NoError(t, err)

	assert.Equal(t, 0, decoded.SourceVersion)
	assert.Equal(t, backup.Version, decoded.Snapshot.Version)
	assert.Equal(t, 1, decoded.Dropped)
	assert.Len(t, decoded.Snapshot.Workouts, 2)
	assert.Len(t, decoded.Snapshot.BodyLog, 1)
	require.NotNil(t, decoded.Snapshot.Profile)
	assert.Equal(t, "Robin", decoded.Snapshot.Profile.Name)
}

func TestDecode_Errors(t *testing.T) {
	_, err := backup.Decode([]byte(`not json`))
	assert.ErrorIs(t, err, backup.ErrInvalidSnapshot)

	_, err = backup.Decode([]byte(`{"version": 2}`))
	assert.ErrorIs(t, err, backup.ErrUnsupportedVersion)
}

func TestDecode_EmptyDefaults(t *testing.T) {
	decoded, err := backup.Decode([]byte(`{"version": 1}`))
	require.NoError(t, err)

	assert.Nil(t, decoded.Snapshot.Profile)
	assert.NotNil(t, decoded.Snapshot.Workouts)
	assert.NotNil(t, decoded.Snapshot.BodyLog)
}

func TestService_ImportLegacy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := f.svc.Import(ctx, "usr_1", []byte(legacyState))
	require.NoError(t, err)

	assert.Equal(t, &backup.ImportResult{
		SourceVersion: 0,
		Profile:       true,
		Workouts:      1,
		BodyEntries:   1,
		Dropped:       2,
	}, result)

	p, err := f.profiles.Profile(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, planner.GoalFatLoss, p.Goal)
	assert.Equal(t, 4, p.DaysPerWeek)
	assert.Nil(t, p.WeightKg)

	page, err := f.workouts.List(ctx, "usr_1", 0, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cardio session", page.Items[0].Title)
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	src := newFixture()
	ctx := context.Background()

	_, err := src.profiles.Upsert(ctx, "usr_1", planner.RawProfile{
		Age: planner.Num(30), HeightCm: planner.Num(180), WeightKg: planner.Num(75), Goal: "endurance",
	})
	require.NoError(t, err)
	_, err = src.workouts.Create(ctx, "usr_1", &models.WorkoutCreateRequest{Date: "2026-02-01", Type: "mobility", Minutes: 20})
	require.NoError(t, err)
	_, err = src.body.Create(ctx, "usr_1", &models.BodyEntryCreateRequest{Date: "2026-02-01", WeightKg: 75.2})
	require.NoError(t, err)

	snap, err := src.svc.Export(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, backup.Version, snap.Version)
	require.NotNil(t, snap.Profile)

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	dst := newFixture()
	result, err := dst.svc.Import(ctx, "usr_9", data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SourceVersion)
	assert.Equal(t, 1, result.Workouts)
	assert.Equal(t, 1, result.BodyEntries)
	assert.Zero(t, result.Dropped)

	want, err := src.profiles.Profile(ctx, "usr_1")
	require.NoError(t, err)
	got, err := dst.profiles.Profile(ctx, "usr_9")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_ExportWithoutProfile(t *testing.T) {
	snap, err := newFixture().svc.Export(context.Background(), "usr_1")
	require.NoError(t, err)

	assert.Nil(t, snap.Profile)
	assert.Empty(t, snap.Workouts)
	assert.Empty(t, snap.BodyLog)
}
