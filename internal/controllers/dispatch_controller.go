package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"iso_dispatch/internal/config"
	"iso_dispatch/internal/dispatch"
	"iso_dispatch/internal/models"
	"iso_dispatch/internal/optimizer"
	"iso_dispatch/internal/refdata"
)

// solver is the external optimizer handle, wired once at startup.
var solver *optimizer.Client

// InitSolver configures the external optimizer client.
func InitSolver(baseURL string) {
	solver = optimizer.NewClient(baseURL)
}

// Optimize asks the external solver for a fresh fleet plan, runs the
// analytics core over the result and persists it as the new session state.
// A solver failure leaves the previously stored plan and analytics intact.
func Optimize(c *gin.Context) {
	pol := config.Current

	incident := activeIncident()
	var avoid *optimizer.AvoidPoint
	incidentCtx := dispatch.IncidentContext{}
	if incident != nil {
		avoid = &optimizer.AvoidPoint{Lat: incident.SnappedLat, Lon: incident.SnappedLon}
		incidentCtx = dispatch.IncidentContext{Active: true, Road: incident.Road}
	}

	raw, err := solver.Optimize(c.Request.Context(), avoid)
	if err != nil {
		logrus.WithError(err).Error("Optimize: solver request failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "optimizer unavailable, previous plan unchanged"})
		return
	}

	ref, err := refdata.Lookup(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load hospital reference data: " + err.Error()})
		return
	}

	plan := dispatch.BuildPlan(raw, ref, pol)

	baseline, err := loadPlan(config.DB, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load baseline: " + err.Error()})
		return
	}
	dispatch.ApplyDeltas(plan, baseline, pol.DeltaNoiseFloor)
	analytics := dispatch.Aggregate(plan, incidentCtx, pol)

	if err := replacePlan(config.DB, plan, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist plan: " + err.Error()})
		return
	}

	// The first incident-free solve becomes the comparison baseline. It is
	// never overwritten automatically afterwards.
	if incident == nil && len(baseline) == 0 {
		if err := replacePlan(config.DB, plan, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist baseline: " + err.Error()})
			return
		}
		logrus.Infof("baseline snapshot captured: %d routes", len(plan))
	}

	payload := gin.H{"routes": plan, "analytics": analytics}
	BroadcastPlan(payload)
	c.JSON(http.StatusOK, payload)
}

// GetPlan returns the persisted session plan with analytics and baseline
// deltas recomputed from stored state.
func GetPlan(c *gin.Context) {
	pol := config.Current

	plan, err := loadPlan(config.DB, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load plan: " + err.Error()})
		return
	}
	if len(plan) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no plan yet, run an optimization first"})
		return
	}

	baseline, err := loadPlan(config.DB, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load baseline: " + err.Error()})
		return
	}
	dispatch.ApplyDeltas(plan, baseline, pol.DeltaNoiseFloor)

	incidentCtx := dispatch.IncidentContext{}
	if incident := activeIncident(); incident != nil {
		incidentCtx = dispatch.IncidentContext{Active: true, Road: incident.Road}
	}

	c.JSON(http.StatusOK, gin.H{
		"routes":    plan,
		"analytics": dispatch.Aggregate(plan, incidentCtx, pol),
	})
}

// GetPlanGeometry returns each vehicle's road geometry as GeoJSON for map
// rendering, converted from the stored WKB the way the rest of the plan is.
func GetPlanGeometry(c *gin.Context) {
	var rows []models.Route
	if err := config.DB.Where("baseline = ?", false).Order("vehicle_id ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load plan: " + err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no plan yet, run an optimization first"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		geojson, err := wkbToGeoJSON(row.Geometry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode geometry: " + err.Error()})
			return
		}
		out = append(out, gin.H{"vehicle_id": row.VehicleID, "geometry": geojson})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// GetBaseline returns the frozen incident-free snapshot with its analytics
// recomputed; 404 until the first incident-free optimization has run.
func GetBaseline(c *gin.Context) {
	baseline, err := loadPlan(config.DB, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load baseline: " + err.Error()})
		return
	}
	if len(baseline) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no baseline captured yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routes":    baseline,
		"analytics": dispatch.Aggregate(baseline, dispatch.IncidentContext{}, config.Current),
	})
}

// DeleteBaseline discards the snapshot so the next incident-free
// optimization captures a new one. Admin only: the baseline anchors every
// delta shown to dispatchers.
func DeleteBaseline(c *gin.Context) {
	if err := replacePlan(config.DB, nil, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete baseline: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
