package body_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/api/models"
	"github.com/fitplan/fitplan/internal/body"
)

func floatPtr(v float64) *float64 { return &v }

func TestService_Create(t *testing.T) {
	svc := body.NewService(body.NewInMemoryRepository())

	entry, err := svc.Create(context.Background(), "usr_1", &models.BodyEntryCreateRequest{
		Date:     "2026-03-02",
		WeightKg: 81.4,
		WaistCm:  floatPtr(0),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(entry.ID, "bdy_"))
	assert.InDelta(t, 81.4, entry.WeightKg, 0.001)
	assert.Nil(t, entry.WaistCm)
}

func TestService_Create_ValidationErrors(t *testing.T) {
	svc := body.NewService(body.NewInMemoryRepository())

	tests := []struct {
		name      string
		input     models.BodyEntryCreateRequest
		wantField string
	}{
		{"missing weight", models.BodyEntryCreateRequest{}, "weightKg"},
		{"weight below minimum", models.BodyEntryCreateRequest{WeightKg: 29.9}, "weightKg"},
		{"waist out of range", models.BodyEntryCreateRequest{WeightKg: 80, WaistCm: floatPtr(10)}, "waistCm"},
		{"bad date", models.BodyEntryCreateRequest{WeightKg: 80, Date: "yesterday"}, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "usr_1", &tt.input)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Errors[0].Field)
		})
	}
}

func TestService_ListAndDelete(t *testing.T) {
	svc := body.NewService(body.NewInMemoryRepository())
	ctx := context.Background()

	first, err := svc.Create(ctx, "usr_1", &models.BodyEntryCreateRequest{Date: "2026-03-01", WeightKg: 82})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "usr_1", &models.BodyEntryCreateRequest{Date: "2026-03-08", WeightKg: 81, WaistCm: floatPtr(88)})
	require.NoError(t, err)

	page, err := svc.List(ctx, "usr_1", 0, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, models.Date("2026-03-08"), page.Items[0].Date)
	assert.Nil(t, page.Meta.NextCursor)

	require.NoError(t, svc.Delete(ctx, "usr_1", first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "usr_1", first.ID), body.ErrEntryNotFound)

	page, err = svc.List(ctx, "usr_1", 0, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestService_Import(t *testing.T) {
	svc := body.NewService(body.NewInMemoryRepository())
	ctx := context.Background()

	kept, err := svc.Import(ctx, "usr_1", []models.BodyEntry{
		{Date: "2026-01-01", WeightKg: 90},
		{Date: "2026-01-08", WeightKg: 12},
		{Date: "2026-01-15", WeightKg: 89.5, WaistCm: floatPtr(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, kept)

	exported, err := svc.Export(ctx, "usr_1")
	require.NoError(t, err)
	require.Len(t, exported, 2)
	assert.Equal(t, models.Date("2026-01-15"), exported[0].Date)
}
