package decay

import "math"

// First-order exponential decay of isotope activity, expressed as a
// percentage of the activity at dispatch time. Tc-99m defaults.
const (
	InitialActivity = 100.0
	HalfLifeHours   = 6.0
)

// Triage tiers in decreasing clinical usability. The boundaries are closed
// at the lower edge (>=70, >=35); exactness matters because FUTILE drives
// automatic cancellation.
const (
	TriageOptimal  = "OPTIMAL"
	TriageDegraded = "DEGRADED"
	TriageFutile   = "FUTILE"

	OptimalThreshold  = 70.0
	FutilityThreshold = 35.0
)

// Lambda returns the decay constant for a given half-life in hours.
func Lambda(halfLifeHours float64) float64 {
	return math.Ln2 / halfLifeHours
}

// Potency returns the remaining activity percentage after elapsedMinutes,
// assuming the default half-life. Returns exactly 100 at t=0, decreases
// strictly monotonically and approaches 0 asymptotically. Negative input is
// a caller contract violation; callers clamp upstream.
func Potency(elapsedMinutes float64) float64 {
	return PotencyWithHalfLife(elapsedMinutes, HalfLifeHours)
}

// PotencyWithHalfLife is Potency with the half-life taken from session policy.
func PotencyWithHalfLife(elapsedMinutes, halfLifeHours float64) float64 {
	return InitialActivity * math.Exp(-Lambda(halfLifeHours)*elapsedMinutes/60.0)
}

// Classify maps a potency percentage to its triage tier.
func Classify(potency float64) string {
	switch {
	case potency >= OptimalThreshold:
		return TriageOptimal
	case potency >= FutilityThreshold:
		return TriageDegraded
	default:
		return TriageFutile
	}
}

// ClassifyWith is Classify with policy-supplied thresholds.
func ClassifyWith(potency, optimal, futility float64) string {
	switch {
	case potency >= optimal:
		return TriageOptimal
	case potency >= futility:
		return TriageDegraded
	default:
		return TriageFutile
	}
}

// UseLabel returns the clinical-use description for a triage tier.
func UseLabel(tier string) string {
	switch tier {
	case TriageOptimal:
		return "Cardiac/Oncology"
	case TriageDegraded:
		return "Bone/Renal Only"
	default:
		return "Marked for Cancellation"
	}
}
