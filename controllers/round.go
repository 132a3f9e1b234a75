package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasmeira/pirata-backend/services"
)

// RoundStatus reports the current round window without exposing the deck's
// ground-truth labels to polling clients.
func RoundStatus(coordinator *services.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		round := coordinator.Snapshot()
		if !round.Active(time.Now()) {
			c.JSON(http.StatusOK, gin.H{"active": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"active":                 true,
			"expires_at":             round.ExpiresAt,
			"time_remaining_seconds": int(coordinator.TimeRemaining().Seconds()),
			"card_count":             len(round.Cards),
		})
	}
}
