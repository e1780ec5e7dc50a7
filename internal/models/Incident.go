package models

import "gorm.io/gorm"

// Incident is a single road disruption point. At most one row is active at
// a time; clearing an incident deactivates it rather than deleting history.
type Incident struct {
	gorm.Model

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Position after projection onto the nearest route segment.
	SnappedLat float64 `json:"snapped_lat"`
	SnappedLon float64 `json:"snapped_lon"`

	Road   string `json:"road"` // operator-supplied or derived label
	Active bool   `json:"active" gorm:"index"`
}
