package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplan/fitplan/internal/planner"
)

func TestEstimateEnergy(t *testing.T) {
	tests := []struct {
		name     string
		raw      planner.RawProfile
		wantBMR  int
		wantTDEE int
	}{
		{
			name: "male light",
			raw: planner.RawProfile{Sex: "male", Age: planner.Num(32), HeightCm: planner.Num(178),
				WeightKg: planner.Num(82), ActivityLevel: "light"},
			wantBMR:  1778,
			wantTDEE: 2444,
		},
		{
			name: "female moderate",
			raw: planner.RawProfile{Sex: "female", Age: planner.Num(30), HeightCm: planner.Num(165),
				WeightKg: planner.Num(60), ActivityLevel: "moderate"},
			wantBMR:  1320,
			wantTDEE: 2046,
		},
		{
			name: "male sedentary",
			raw: planner.RawProfile{Age: planner.Num(30), HeightCm: planner.Num(180),
				WeightKg: planner.Num(60), ActivityLevel: "sedentary"},
			wantBMR:  1580,
			wantTDEE: 1896,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := planner.EstimateEnergy(planner.Normalize(tt.raw))
			require.NotNil(t, e)
			assert.Equal(t, tt.wantBMR, e.BMR)
			assert.Equal(t, tt.wantTDEE, e.TDEE)
		})
	}
}

func TestEstimateEnergy_MissingMetrics(t *testing.T) {
	full := planner.Normalize(planner.RawProfile{Age: planner.Num(32), HeightCm: planner.Num(178), WeightKg: planner.Num(82)})
	require.NotNil(t, planner.EstimateEnergy(full))

	noAge := full
	noAge.Age = nil
	noHeight := full
	noHeight.HeightCm = nil
	noWeight := full
	noWeight.WeightKg = nil

	for name, p := range map[string]planner.Profile{"age": noAge, "height": noHeight, "weight": noWeight} {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, planner.EstimateEnergy(p))
			assert.Nil(t, planner.AllocateMacros(p))
		})
	}
}

func TestActivityMultiplier(t *testing.T) {
	assert.Equal(t, 1.2, planner.ActivityMultiplier(planner.ActivitySedentary))
	assert.Equal(t, 1.375, planner.ActivityMultiplier(planner.ActivityLight))
	assert.Equal(t, 1.55, planner.ActivityMultiplier(planner.ActivityModerate))
	assert.Equal(t, 1.725, planner.ActivityMultiplier(planner.ActivityHigh))
	assert.Equal(t, 1.375, planner.ActivityMultiplier("unknown"))
}
