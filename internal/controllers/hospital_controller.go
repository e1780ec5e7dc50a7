package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iso_dispatch/internal/config"
	"iso_dispatch/internal/models"
)

// ListHospitals returns the geo reference data for every known location.
func ListHospitals(c *gin.Context) {
	var hospitals []models.Hospital
	if err := config.DB.Order("tier ASC, name ASC").Find(&hospitals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing hospitals: " + err.Error()})
		return
	}

	out := make([]gin.H, 0, len(hospitals))
	for _, h := range hospitals {
		out = append(out, gin.H{
			"name": h.Name,
			"lat":  h.Lat,
			"lon":  h.Lon,
			"tier": h.Tier,
			"type": h.Type,
		})
	}
	c.JSON(http.StatusOK, out)
}
