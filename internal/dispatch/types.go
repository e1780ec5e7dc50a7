package dispatch

import "math"

// RawStop and RawRoute are the optimizer's answer before any clinical or
// financial meaning is attached: an ordered visit sequence with arrival
// offsets in minutes since dispatch.
type RawStop struct {
	Name           string  `json:"name"`
	Tier           int     `json:"tier"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	ArrivalTimeMin float64 `json:"arrival_time_min"`
}

type RawRoute struct {
	VehicleID int         `json:"vehicle_id"`
	Steps     []RawStop   `json:"steps"`
	Geometry  [][]float64 `json:"geometry,omitempty"` // [lat, lon] pairs
}

// PlanStop is a stop enriched with decay and triage data. PotencyDelta is
// set only when a baseline exists and the change clears the noise floor.
type PlanStop struct {
	Name           string   `json:"name"`
	Tier           int      `json:"tier"`
	Lat            float64  `json:"lat"`
	Lon            float64  `json:"lon"`
	ArrivalTimeMin float64  `json:"arrival_time_min"`
	Potency        float64  `json:"potency"`
	Triage         string   `json:"triage"`
	PotencyDelta   *float64 `json:"potency_delta,omitempty"`
}

type Financial struct {
	MissionValue   float64 `json:"mission_value"`
	PreservedValue float64 `json:"preserved_value"`
	WasteValue     float64 `json:"waste_value"`
}

// PlanRoute is one vehicle's enriched plan. Canceled stops are kept for
// waste accounting and reporting but are no longer part of the delivery run.
type PlanRoute struct {
	VehicleID  int         `json:"vehicle_id"`
	Steps      []PlanStop  `json:"steps"`
	Canceled   []PlanStop  `json:"canceled"`
	Geometry   [][]float64 `json:"geometry"`
	AvgPotency float64     `json:"avg_potency"`
	Financial  Financial   `json:"financial"`
}

type CanceledMission struct {
	Name           string  `json:"name"`
	Potency        float64 `json:"potency"`
	Tier           int     `json:"tier"`
	OriginalETAMin float64 `json:"original_eta_min"`
}

type ClinicalOutcomes struct {
	DosesSaved        int               `json:"doses_saved"`
	CardiacReady      int               `json:"cardiac_ready"`
	AvoidedWasteCount int               `json:"avoided_waste_count"`
	AvoidedWasteCost  float64           `json:"avoided_waste_cost"`
	CanceledMissions  []CanceledMission `json:"canceled_missions"`
}

type FleetFinancial struct {
	DoseValue           float64 `json:"dose_value"`
	TotalMissionValue   float64 `json:"total_mission_value"`
	TotalPreservedValue float64 `json:"total_preserved_value"`
	TotalWasteValue     float64 `json:"total_waste_value"`
}

// Analytics is the fleet-level aggregate consumed by the console.
type Analytics struct {
	FleetAvgPotency  float64          `json:"fleet_avg_potency"`
	FleetStopsServed int              `json:"fleet_stops_served"`
	IncidentActive   bool             `json:"incident_active"`
	SnappedRoad      string           `json:"snapped_road,omitempty"`
	ClinicalOutcomes ClinicalOutcomes `json:"clinical_outcomes"`
	Financial        FleetFinancial   `json:"financial"`
	Recommendation   string           `json:"recommendation"`
}

// TriageDepot marks the tier-0 source on a route; depots never carry doses
// and are excluded from clinical accounting.
const (
	TriageDepot    = "DEPOT"
	TriageCanceled = "CANCELED"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round0(v float64) float64 {
	return math.Round(v)
}
