package models

import "gorm.io/gorm"

// Route is one vehicle's delivery plan as persisted between reloads of the
// dispatch console. Baseline rows are the frozen incident-free snapshot and
// are never touched by plan replacement.
type Route struct {
	gorm.Model

	VehicleID  int     `json:"vehicle_id"`
	Baseline   bool    `json:"baseline" gorm:"index"`
	AvgPotency float64 `json:"avg_potency"`

	MissionValue   float64 `json:"mission_value"`
	PreservedValue float64 `json:"preserved_value"`
	WasteValue     float64 `json:"waste_value"`

	// Road geometry stored as a WKB LINESTRING (lon/lat order).
	// API input/output is GeoJSON; conversion lives in the controllers.
	Geometry []byte `gorm:"type:bytea"`

	Stops []Stop `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"stops,omitempty"`
}
