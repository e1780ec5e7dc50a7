package dispatch

import (
	"fmt"

	"iso_dispatch/internal/config"
	"iso_dispatch/internal/decay"
)

// IncidentContext carries the disruption facts established before the
// optimizer ran; the aggregator passes them through, it never recomputes them.
type IncidentContext struct {
	Active bool
	Road   string
}

// Aggregate rolls per-stop potency, cancellations and financials into the
// fleet-level analytics record. Depot stops and canceled stops never count
// toward clinical figures; canceled stops count toward waste only.
func Aggregate(routes []PlanRoute, incident IncidentContext, pol config.Policy) Analytics {
	var (
		totalPotency float64
		served       int
		dosesSaved   int
		cardiacReady int
		canceled     []CanceledMission

		totalMission   float64
		totalPreserved float64
		totalWaste     float64
	)

	for _, r := range routes {
		for _, s := range r.Steps {
			if s.Tier == 0 {
				continue
			}
			totalPotency += s.Potency
			served++
			if s.Potency > pol.SavedThreshold {
				dosesSaved++
			}
			if s.Triage == decay.TriageOptimal {
				cardiacReady++
			}
		}
		for _, c := range r.Canceled {
			canceled = append(canceled, CanceledMission{
				Name:           c.Name,
				Potency:        c.Potency,
				Tier:           c.Tier,
				OriginalETAMin: c.ArrivalTimeMin,
			})
		}
		totalMission += r.Financial.MissionValue
		totalPreserved += r.Financial.PreservedValue
		totalWaste += r.Financial.WasteValue
	}

	// No countable stops means nothing has decayed yet; report full potency
	// rather than a misleading zero.
	fleetAvg := decay.InitialActivity
	if served > 0 {
		fleetAvg = round1(totalPotency / float64(served))
	}

	a := Analytics{
		FleetAvgPotency:  fleetAvg,
		FleetStopsServed: served,
		IncidentActive:   incident.Active,
		SnappedRoad:      incident.Road,
		ClinicalOutcomes: ClinicalOutcomes{
			DosesSaved:        dosesSaved,
			CardiacReady:      cardiacReady,
			AvoidedWasteCount: len(canceled),
			AvoidedWasteCost:  float64(len(canceled)) * pol.DoseValue,
			CanceledMissions:  canceled,
		},
		Financial: FleetFinancial{
			DoseValue:           pol.DoseValue,
			TotalMissionValue:   round0(totalMission),
			TotalPreservedValue: round0(totalPreserved),
			TotalWasteValue:     round0(totalWaste),
		},
	}
	a.Recommendation = recommendation(routes, a, pol)
	return a
}

// recommendation is a thin derived view over the aggregate numbers: text
// selection keys off the worst-affected non-depot stop when an incident is
// active, reusing the triage thresholds rather than duplicating them.
func recommendation(routes []PlanRoute, a Analytics, pol config.Policy) string {
	if !a.IncidentActive {
		return fmt.Sprintf("Nominal operations: %d stops served at %.1f%% average fleet potency.",
			a.FleetStopsServed, a.FleetAvgPotency)
	}

	worst, worstName, found := worstStop(routes)
	road := a.SnappedRoad
	if road == "" {
		road = "the affected corridor"
	}

	switch {
	case !found:
		return fmt.Sprintf("Disruption on %s: no active deliveries affected.", road)
	case worst < pol.FutilityThreshold:
		return fmt.Sprintf(
			"Disruption on %s: the dose for %s would arrive at %.1f%% potency, below clinical viability. Recommend cancelling that delivery and redistributing the remaining doses.",
			road, worstName, worst)
	case worst < pol.OptimalThreshold:
		return fmt.Sprintf(
			"Disruption on %s: fleet rerouted. Worst delivery degraded to %.1f%% (%s), restricted to bone/renal use.",
			road, worst, worstName)
	default:
		return fmt.Sprintf(
			"Disruption on %s fully mitigated: every delivery rerouted above %.0f%% potency.",
			road, pol.OptimalThreshold)
	}
}

// worstStop returns the lowest potency among all non-depot stops, canceled
// included; a canceled delivery is by definition the worst outcome on a route.
func worstStop(routes []PlanRoute) (float64, string, bool) {
	var (
		worst float64
		name  string
		found bool
	)
	consider := func(s PlanStop) {
		if s.Tier == 0 {
			return
		}
		if !found || s.Potency < worst {
			worst, name, found = s.Potency, s.Name, true
		}
	}
	for _, r := range routes {
		for _, s := range r.Steps {
			consider(s)
		}
		for _, c := range r.Canceled {
			consider(c)
		}
	}
	return worst, name, found
}
