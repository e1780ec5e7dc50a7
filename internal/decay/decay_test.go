package decay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPotencyAtDispatch(t *testing.T) {
	assert.Equal(t, 100.0, Potency(0))
}

func TestPotencyHalfLife(t *testing.T) {
	// After one half-life (6h = 360min) exactly half the activity remains.
	assert.InDelta(t, 50.0, Potency(360), 1e-9)
	assert.InDelta(t, 25.0, Potency(720), 1e-9)
}

func TestPotencyMonotonicallyDecreasing(t *testing.T) {
	prev := Potency(0)
	for min := 1.0; min <= 720; min += 7 {
		cur := Potency(min)
		assert.Less(t, cur, prev, "potency must strictly decrease at t=%v", min)
		assert.Greater(t, cur, 0.0)
		prev = cur
	}
}

func TestPotencyWithCustomHalfLife(t *testing.T) {
	assert.InDelta(t, 50.0, PotencyWithHalfLife(120, 2.0), 1e-9)
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		potency float64
		want    string
	}{
		{100.0, TriageOptimal},
		{70.0, TriageOptimal},
		{69.999, TriageDegraded},
		{35.0, TriageDegraded},
		{34.999, TriageFutile},
		{0.0, TriageFutile},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.potency), "potency=%v", tc.potency)
	}
}

func TestUseLabel(t *testing.T) {
	assert.Equal(t, "Cardiac/Oncology", UseLabel(TriageOptimal))
	assert.Equal(t, "Bone/Renal Only", UseLabel(TriageDegraded))
	assert.Equal(t, "Marked for Cancellation", UseLabel(TriageFutile))
}
