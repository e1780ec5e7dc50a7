package dispatch

import "math"

// ApplyDeltas annotates current stops with the potency change against the
// incident-free baseline. A stop is matched by hospital name across all
// baseline routes, first match wins (names are unique per baseline). Deltas
// within the noise floor are suppressed so floating-point jitter never
// reads as a clinical change. With no baseline, nothing is annotated; an
// absent delta is never the same as a zero delta.
func ApplyDeltas(current []PlanRoute, baseline []PlanRoute, noiseFloor float64) {
	if len(baseline) == 0 {
		return
	}

	for ri := range current {
		annotateStops(current[ri].Steps, baseline, noiseFloor)
		annotateStops(current[ri].Canceled, baseline, noiseFloor)
	}
}

func annotateStops(stops []PlanStop, baseline []PlanRoute, noiseFloor float64) {
	for si := range stops {
		if stops[si].Tier == 0 {
			continue
		}
		base, ok := findBaselineStop(baseline, stops[si].Name)
		if !ok {
			continue
		}
		delta := round1(stops[si].Potency - base.Potency)
		if math.Abs(delta) <= noiseFloor {
			continue
		}
		d := delta
		stops[si].PotencyDelta = &d
	}
}

func findBaselineStop(baseline []PlanRoute, name string) (PlanStop, bool) {
	for _, r := range baseline {
		for _, s := range r.Steps {
			if s.Name == name {
				return s, true
			}
		}
	}
	return PlanStop{}, false
}
