package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lucasmeira/pirata-backend/controllers"
	"github.com/lucasmeira/pirata-backend/services"
)

// SetupRoutes mounts the REST read endpoints under /api.
func SetupRoutes(r *gin.Engine, coordinator *services.Coordinator) {
	api := r.Group("/api")

	api.GET("/leaderboard", controllers.Leaderboard(coordinator)) // current top-N ranking
	api.GET("/round", controllers.RoundStatus(coordinator))       // round window status
}
