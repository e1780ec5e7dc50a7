package dispatch

import (
	"github.com/sirupsen/logrus"

	"iso_dispatch/internal/config"
	"iso_dispatch/internal/decay"
	"iso_dispatch/internal/models"
)

// BuildPlan turns raw optimizer routes into enriched plan routes: per-stop
// potency and triage, automatic cancellation of futile deliveries, and
// per-route financials. Pure except for warning logs on reference-data
// mismatches; all state is passed in explicitly.
func BuildPlan(raw []RawRoute, ref map[string]models.Hospital, pol config.Policy) []PlanRoute {
	routes := make([]PlanRoute, 0, len(raw))

	for _, rr := range raw {
		routes = append(routes, buildRoute(rr, ref, pol))
	}
	return routes
}

func buildRoute(rr RawRoute, ref map[string]models.Hospital, pol config.Policy) PlanRoute {
	steps := make([]PlanStop, 0, len(rr.Steps))
	var canceled []PlanStop

	for _, rs := range rr.Steps {
		if _, ok := ref[rs.Name]; !ok && rs.Tier != 0 {
			// Route data and reference data come from independently updated
			// sources; an unknown hospital is a recoverable inconsistency.
			logrus.WithFields(logrus.Fields{
				"stop":    rs.Name,
				"vehicle": rr.VehicleID,
			}).Warn("stop references unknown hospital, keeping without reference data")
		}

		stop := PlanStop{
			Name:           rs.Name,
			Tier:           rs.Tier,
			Lat:            rs.Lat,
			Lon:            rs.Lon,
			ArrivalTimeMin: rs.ArrivalTimeMin,
		}

		if rs.Tier == 0 {
			stop.Potency = decay.InitialActivity
			stop.Triage = TriageDepot
			steps = append(steps, stop)
			continue
		}

		potency := round1(decay.PotencyWithHalfLife(rs.ArrivalTimeMin, pol.HalfLifeHours))
		stop.Potency = potency
		stop.Triage = decay.ClassifyWith(potency, pol.OptimalThreshold, pol.FutilityThreshold)

		// A dose that would arrive non-viable is withheld at the depot
		// rather than wasted on the road.
		if stop.Triage == decay.TriageFutile {
			stop.Triage = TriageCanceled
			canceled = append(canceled, stop)
			continue
		}
		steps = append(steps, stop)
	}

	route := PlanRoute{
		VehicleID: rr.VehicleID,
		Steps:     steps,
		Canceled:  canceled,
		Geometry:  rr.Geometry,
		Financial: routeFinancial(steps, canceled, pol.DoseValue),
	}

	if len(route.Geometry) == 0 {
		route.Geometry = connectStops(steps)
	}

	var total float64
	var served int
	for _, s := range steps {
		if s.Tier != 0 {
			total += s.Potency
			served++
		}
	}
	if served > 0 {
		route.AvgPotency = round1(total / float64(served))
	}

	return route
}

// routeFinancial prices the route: preserved value scales with delivered
// potency, each canceled dose is written off at full price, and the mission
// value is every planned dose at full price. Since potency never exceeds
// 100, preserved + waste never exceeds the mission value.
func routeFinancial(steps, canceled []PlanStop, doseValue float64) Financial {
	var preserved float64
	var delivered int

	for _, s := range steps {
		if s.Tier == 0 {
			continue
		}
		preserved += (s.Potency / 100.0) * doseValue
		delivered++
	}

	return Financial{
		MissionValue:   float64(delivered+len(canceled)) * doseValue,
		PreservedValue: round0(preserved),
		WasteValue:     float64(len(canceled)) * doseValue,
	}
}

// connectStops derives a fallback polyline by joining stops in visit order
// when the optimizer supplied no road geometry.
func connectStops(steps []PlanStop) [][]float64 {
	if len(steps) < 2 {
		return nil
	}
	geom := make([][]float64, 0, len(steps))
	for _, s := range steps {
		geom = append(geom, []float64{s.Lat, s.Lon})
	}
	return geom
}
