package models

import "gorm.io/gorm"

// Hospital is immutable reference data synced once at startup from the
// external feed. Tier 0 is the source depot, tier 3 the highest-criticality
// recipients.
type Hospital struct {
	gorm.Model
	Name string  `json:"name" gorm:"uniqueIndex"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Tier int     `json:"tier"`
	Type string  `json:"type"`
}
