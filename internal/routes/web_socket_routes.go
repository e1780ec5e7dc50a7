package routes

import (
	"iso_dispatch/internal/controllers"

	"github.com/gin-gonic/gin"
)

func WebSocketRoutes(r *gin.Engine) {
	wsRoutes := r.Group("/ws")
	{
		wsRoutes.GET("/feed", controllers.HandleFeedWebSocket)
	}
}
