package models

import "gorm.io/gorm"

// Stop is one scheduled arrival on a route. Seq preserves visiting order.
// Canceled stops stay on the route for waste accounting but are excluded
// from clinical accounting, as is the tier-0 depot.
type Stop struct {
	gorm.Model

	RouteID uint `json:"route_id" gorm:"index"`
	Seq     int  `json:"seq"`

	Name           string  `json:"name"`
	Tier           int     `json:"tier"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	ArrivalTimeMin float64 `json:"arrival_time_min"`
	Potency        float64 `json:"potency"`
	Triage         string  `json:"triage"`
	Canceled       bool    `json:"canceled"`
}
