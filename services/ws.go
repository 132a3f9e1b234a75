package services

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lucasmeira/pirata-backend/models"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the HTTP layer; the upgrade accepts any origin.
		return true
	},
}

// HandleWebSocket returns the gin handler for /ws/:client_id/:nickname.
// It upgrades the connection, registers the session, replays the current
// round to the joiner and starts the pumps.
func HandleWebSocket(registry *Registry, coordinator *Coordinator, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("client_id")
		nickname := c.Param("nickname")
		if sessionID == "" || nickname == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "client_id and nickname are required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Errorf("[ws] upgrade error: %v", err)
			return
		}

		client := NewClient(sessionID, nickname, conn, registry, coordinator, log)
		registry.Connect(sessionID, client)
		log.Infof("[ws] new client: session=%s nickname=%s", sessionID, nickname)

		// Replay the current round to the joiner. Snapshot reads strictly
		// after the coordinator's mutation, so a half-built round is never
		// visible here.
		if round := coordinator.Snapshot(); round.Active(time.Now()) {
			client.sendJSON(models.GameStateMessage{
				Type:      models.TypeGameState,
				Cards:     round.Cards,
				ExpiresAt: round.ExpiresAt,
			})
		}

		if entries, err := coordinator.Leaderboard(context.Background()); err == nil {
			if entries == nil {
				entries = []models.ScoreEntry{}
			}
			client.sendJSON(models.LeaderboardUpdateMessage{
				Type:        models.TypeLeaderboardUpdate,
				Leaderboard: entries,
			})
		} else {
			log.Errorf("[ws] leaderboard fetch for %s: %v", sessionID, err)
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
