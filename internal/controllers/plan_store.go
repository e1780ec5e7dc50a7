package controllers

import (
	"encoding/binary"
	"fmt"

	"gorm.io/gorm"

	"iso_dispatch/internal/dispatch"
	"iso_dispatch/internal/geosnap"
	"iso_dispatch/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// Session persistence: the current plan and the baseline snapshot live in
// the routes/stops tables so the console survives reloads. Geometry is kept
// as WKB LINESTRING (lon/lat order) and exposed as [lat, lon] pairs or a
// GeoJSON string at the API edge.

// geometryToWKB converts [lat, lon] polyline pairs to WKB bytes.
func geometryToWKB(geometry [][]float64) ([]byte, error) {
	if len(geometry) < 2 {
		return nil, nil
	}
	coords := make([]geom.Coord, 0, len(geometry))
	for _, p := range geometry {
		if len(p) != 2 {
			return nil, fmt.Errorf("polyline point must be a [lat, lon] pair, got %v", p)
		}
		coords = append(coords, geom.Coord{p[1], p[0]})
	}
	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords(coords); err != nil {
		return nil, err
	}
	return wkb.Marshal(line, binary.LittleEndian)
}

// wkbToGeometry converts stored WKB bytes back to [lat, lon] pairs.
func wkbToGeometry(wkbBytes []byte) ([][]float64, error) {
	if len(wkbBytes) == 0 {
		return nil, nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return nil, err
	}
	line, ok := g.(*geom.LineString)
	if !ok {
		return nil, fmt.Errorf("stored geometry is %T, expected LineString", g)
	}

	coords := line.Coords()
	geometry := make([][]float64, 0, len(coords))
	for _, c := range coords {
		geometry = append(geometry, []float64{c.Y(), c.X()})
	}
	return geometry, nil
}

// wkbToGeoJSON converts WKB bytes into a GeoJSON string for map rendering.
func wkbToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// replacePlan swaps the stored route set (current or baseline) for a new
// one inside a transaction so a failed write never leaves a partial plan.
func replacePlan(db *gorm.DB, plan []dispatch.PlanRoute, baseline bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var old []models.Route
		if err := tx.Where("baseline = ?", baseline).Find(&old).Error; err != nil {
			return err
		}
		for _, r := range old {
			if err := tx.Where("route_id = ?", r.ID).Delete(&models.Stop{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("baseline = ?", baseline).Delete(&models.Route{}).Error; err != nil {
			return err
		}

		for _, pr := range plan {
			wkbGeom, err := geometryToWKB(pr.Geometry)
			if err != nil {
				return fmt.Errorf("encode geometry for vehicle %d: %w", pr.VehicleID, err)
			}

			route := models.Route{
				VehicleID:      pr.VehicleID,
				Baseline:       baseline,
				AvgPotency:     pr.AvgPotency,
				MissionValue:   pr.Financial.MissionValue,
				PreservedValue: pr.Financial.PreservedValue,
				WasteValue:     pr.Financial.WasteValue,
				Geometry:       wkbGeom,
			}
			if err := tx.Create(&route).Error; err != nil {
				return err
			}

			seq := 0
			for _, s := range pr.Steps {
				if err := tx.Create(stopRow(route.ID, seq, s, false)).Error; err != nil {
					return err
				}
				seq++
			}
			for _, s := range pr.Canceled {
				if err := tx.Create(stopRow(route.ID, seq, s, true)).Error; err != nil {
					return err
				}
				seq++
			}
		}
		return nil
	})
}

func stopRow(routeID uint, seq int, s dispatch.PlanStop, canceled bool) *models.Stop {
	return &models.Stop{
		RouteID:        routeID,
		Seq:            seq,
		Name:           s.Name,
		Tier:           s.Tier,
		Lat:            s.Lat,
		Lon:            s.Lon,
		ArrivalTimeMin: s.ArrivalTimeMin,
		Potency:        s.Potency,
		Triage:         s.Triage,
		Canceled:       canceled,
	}
}

// loadPlan rebuilds the enriched plan from its stored rows.
func loadPlan(db *gorm.DB, baseline bool) ([]dispatch.PlanRoute, error) {
	var rows []models.Route
	err := db.Where("baseline = ?", baseline).
		Preload("Stops", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Order("vehicle_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	plan := make([]dispatch.PlanRoute, 0, len(rows))
	for _, row := range rows {
		geometry, err := wkbToGeometry(row.Geometry)
		if err != nil {
			return nil, fmt.Errorf("decode geometry for vehicle %d: %w", row.VehicleID, err)
		}

		pr := dispatch.PlanRoute{
			VehicleID:  row.VehicleID,
			AvgPotency: row.AvgPotency,
			Geometry:   geometry,
			Financial: dispatch.Financial{
				MissionValue:   row.MissionValue,
				PreservedValue: row.PreservedValue,
				WasteValue:     row.WasteValue,
			},
		}
		for _, s := range row.Stops {
			stop := dispatch.PlanStop{
				Name:           s.Name,
				Tier:           s.Tier,
				Lat:            s.Lat,
				Lon:            s.Lon,
				ArrivalTimeMin: s.ArrivalTimeMin,
				Potency:        s.Potency,
				Triage:         s.Triage,
			}
			if s.Canceled {
				pr.Canceled = append(pr.Canceled, stop)
			} else {
				pr.Steps = append(pr.Steps, stop)
			}
		}
		plan = append(plan, pr)
	}
	return plan, nil
}

// loadPaths extracts the active route network for incident snapping: the
// stored polyline when present, otherwise the stops in visiting order.
func loadPaths(db *gorm.DB) ([]geosnap.Path, error) {
	plan, err := loadPlan(db, false)
	if err != nil {
		return nil, err
	}

	paths := make([]geosnap.Path, 0, len(plan))
	for _, pr := range plan {
		path := geosnap.Path{VehicleID: pr.VehicleID}
		if len(pr.Geometry) >= 2 {
			for _, p := range pr.Geometry {
				path.Points = append(path.Points, geosnap.Point{Lat: p[0], Lon: p[1]})
			}
		} else {
			for _, s := range pr.Steps {
				path.Points = append(path.Points, geosnap.Point{Lat: s.Lat, Lon: s.Lon})
			}
		}
		if len(path.Points) >= 2 {
			paths = append(paths, path)
		}
	}
	return paths, nil
}
