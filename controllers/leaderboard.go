package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucasmeira/pirata-backend/models"
	"github.com/lucasmeira/pirata-backend/services"
)

// Leaderboard serves the current top entries over REST, mirroring what the
// websocket leaderboard_update broadcast carries.
func Leaderboard(coordinator *services.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := coordinator.Leaderboard(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "leaderboard unavailable"})
			return
		}
		if entries == nil {
			entries = []models.ScoreEntry{}
		}
		c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
	}
}
