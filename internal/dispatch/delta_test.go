package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDeltasReportsDegradation(t *testing.T) {
	baseline := []PlanRoute{{
		VehicleID: 0,
		Steps: []PlanStop{
			{Name: "ANSTO", Tier: 0, Potency: 100},
			{Name: "St George", Tier: 1, Potency: 90.0},
		},
	}}
	current := []PlanRoute{{
		VehicleID: 0,
		Steps: []PlanStop{
			{Name: "ANSTO", Tier: 0, Potency: 100},
			{Name: "St George", Tier: 1, Potency: 72.0},
		},
	}}

	ApplyDeltas(current, baseline, 0.1)

	require.NotNil(t, current[0].Steps[1].PotencyDelta)
	assert.Equal(t, -18.0, *current[0].Steps[1].PotencyDelta)

	// Depot stops are never annotated.
	assert.Nil(t, current[0].Steps[0].PotencyDelta)
}

func TestApplyDeltasSearchesAllBaselineRoutes(t *testing.T) {
	baseline := []PlanRoute{
		{VehicleID: 0, Steps: []PlanStop{{Name: "Westmead", Tier: 2, Potency: 85.0}}},
		{VehicleID: 1, Steps: []PlanStop{{Name: "Orange", Tier: 3, Potency: 64.0}}},
	}
	current := []PlanRoute{{
		VehicleID: 0,
		Steps:     []PlanStop{{Name: "Orange", Tier: 3, Potency: 60.0}},
	}}

	ApplyDeltas(current, baseline, 0.1)

	require.NotNil(t, current[0].Steps[0].PotencyDelta)
	assert.Equal(t, -4.0, *current[0].Steps[0].PotencyDelta)
}

func TestApplyDeltasSuppressesNoise(t *testing.T) {
	baseline := []PlanRoute{{Steps: []PlanStop{{Name: "Westmead", Tier: 2, Potency: 85.0}}}}
	current := []PlanRoute{{Steps: []PlanStop{{Name: "Westmead", Tier: 2, Potency: 85.1}}}}

	ApplyDeltas(current, baseline, 0.1)
	assert.Nil(t, current[0].Steps[0].PotencyDelta)
}

func TestApplyDeltasAnnotatesCanceledStops(t *testing.T) {
	baseline := []PlanRoute{{Steps: []PlanStop{{Name: "Orange", Tier: 3, Potency: 72.0}}}}
	current := []PlanRoute{{
		Canceled: []PlanStop{{Name: "Orange", Tier: 3, Potency: 31.5, Triage: TriageCanceled}},
	}}

	ApplyDeltas(current, baseline, 0.1)

	require.NotNil(t, current[0].Canceled[0].PotencyDelta)
	assert.Equal(t, -40.5, *current[0].Canceled[0].PotencyDelta)
}

func TestApplyDeltasWithoutBaseline(t *testing.T) {
	current := []PlanRoute{{Steps: []PlanStop{{Name: "Westmead", Tier: 2, Potency: 40.0}}}}

	// Absent baseline means absent deltas, never zero deltas.
	ApplyDeltas(current, nil, 0.1)
	assert.Nil(t, current[0].Steps[0].PotencyDelta)
}

func TestApplyDeltasUnknownStopOmitted(t *testing.T) {
	baseline := []PlanRoute{{Steps: []PlanStop{{Name: "Westmead", Tier: 2, Potency: 85.0}}}}
	current := []PlanRoute{{Steps: []PlanStop{{Name: "Orange", Tier: 3, Potency: 60.0}}}}

	ApplyDeltas(current, baseline, 0.1)
	assert.Nil(t, current[0].Steps[0].PotencyDelta)
}
