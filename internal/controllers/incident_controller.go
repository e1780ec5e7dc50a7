package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"iso_dispatch/internal/config"
	"iso_dispatch/internal/geosnap"
	"iso_dispatch/internal/models"
)

type incidentInput struct {
	Lat  float64 `json:"lat" binding:"required"`
	Lon  float64 `json:"lon" binding:"required"`
	Road string  `json:"road"`
}

// CreateIncident validates a disruption point against the active route
// network. Off-route placements are rejected without touching state; an
// accepted point replaces any previously active incident. The caller then
// re-issues an optimization to get the rerouted plan.
func CreateIncident(c *gin.Context) {
	var input incidentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	paths, err := loadPaths(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load route network: " + err.Error()})
		return
	}
	if len(paths) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "no active routes to place an incident on"})
		return
	}

	candidate := geosnap.Point{Lat: input.Lat, Lon: input.Lon}
	res, ok := geosnap.Snap(candidate, paths, config.Current.SnapToleranceDeg2)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "point is not on any active route, invalid placement"})
		return
	}

	road := input.Road
	if road == "" {
		road = fmt.Sprintf("vehicle %d corridor", res.VehicleID)
	}

	incident := models.Incident{
		Lat:        input.Lat,
		Lon:        input.Lon,
		SnappedLat: res.Point.Lat,
		SnappedLon: res.Point.Lon,
		Road:       road,
		Active:     true,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Incident{}).Where("active = ?", true).Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(&incident).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist incident: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"lat":  incident.SnappedLat,
		"lon":  incident.SnappedLon,
		"road": incident.Road,
	}).Info("incident placed on route network")

	c.JSON(http.StatusCreated, gin.H{"incident": incident})
}

// GetActiveIncident returns the currently active disruption, if any.
func GetActiveIncident(c *gin.Context) {
	incident := activeIncident()
	if incident == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active incident"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"incident": incident})
}

// ClearIncident deactivates the active disruption. The next optimization
// runs incident-free again.
func ClearIncident(c *gin.Context) {
	res := config.DB.Model(&models.Incident{}).Where("active = ?", true).Update("active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear incident: " + res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active incident"})
		return
	}
	c.Status(http.StatusNoContent)
}

// activeIncident returns the active incident row or nil.
func activeIncident() *models.Incident {
	var incident models.Incident
	err := config.DB.Where("active = ?", true).Order("created_at DESC").First(&incident).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Error("activeIncident: query failed")
		}
		return nil
	}
	return &incident
}
