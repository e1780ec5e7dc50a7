package routes

import (
	"iso_dispatch/internal/controllers"

	"github.com/gin-gonic/gin"
)

func HospitalRoutes(r *gin.Engine) {
	// Reference data is public; the console fetches it before login.
	r.GET("/hospitals", controllers.ListHospitals)
}
