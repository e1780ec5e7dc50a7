package routes

import (
	"iso_dispatch/internal/controllers"
	"iso_dispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DispatchRoutes(r *gin.Engine) {
	plan := r.Group("/plan")
	plan.Use(middleware.RequireAuth())
	{
		plan.GET("", controllers.GetPlan)
		plan.GET("/geometry", controllers.GetPlanGeometry)
		plan.GET("/baseline", controllers.GetBaseline)
	}

	dispatch := r.Group("/dispatch")
	dispatch.Use(middleware.RequireAuthWithRole("dispatcher", "admin"))
	{
		dispatch.POST("/optimize", controllers.Optimize)
		dispatch.POST("/incidents", controllers.CreateIncident)
		dispatch.GET("/incidents/active", controllers.GetActiveIncident)
		dispatch.DELETE("/incidents/active", controllers.ClearIncident)
	}

	baseline := r.Group("/dispatch/baseline")
	baseline.Use(middleware.RequireAuthWithRole("admin"))
	{
		baseline.DELETE("", controllers.DeleteBaseline)
	}
}
