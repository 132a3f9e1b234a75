package store

import (
	"context"

	"github.com/lucasmeira/pirata-backend/config"
	"github.com/lucasmeira/pirata-backend/models"
	"go.uber.org/zap"
)

// Leaderboard is the ranked score store consumed by the round coordinator.
// Increment must be safe under concurrent calls for different sessions.
type Leaderboard interface {
	// Reset clears every score; called at round start.
	Reset(ctx context.Context) error
	// Increment atomically adds delta to the (sessionID, nickname) entry
	// and returns the new total.
	Increment(ctx context.Context, sessionID, nickname string, delta int) (int64, error)
	// TopN returns the highest-scoring entries, best first. Tie order is
	// whatever the backend gives us.
	TopN(ctx context.Context, n int) ([]models.ScoreEntry, error)
	// Ping checks reachability. Used at startup only, and only to log.
	Ping(ctx context.Context) error
}

// Open builds the leaderboard backend named in the config. An unreachable
// store is not fatal: redis connects lazily, and a failed postgres connect
// falls back to the in-memory store so the round loop never stalls.
func Open(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) Leaderboard {
	switch cfg.LeaderboardBackend {
	case "postgres":
		db, err := config.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			log.Errorf("[store] postgres unavailable, falling back to memory: %v", err)
			return NewMemoryLeaderboard()
		}
		log.Infof("[store] using postgres leaderboard")
		return NewPostgresLeaderboard(db)
	case "memory":
		log.Infof("[store] using in-memory leaderboard")
		return NewMemoryLeaderboard()
	default:
		if cfg.LeaderboardBackend != "redis" {
			log.Errorf("[store] unknown LEADERBOARD_BACKEND %q, defaulting to redis", cfg.LeaderboardBackend)
		}
		board := NewRedisLeaderboard(cfg.RedisAddr)
		if err := board.Ping(ctx); err != nil {
			log.Errorf("[store] redis ping failed (continuing): %v", err)
		} else {
			log.Infof("[store] using redis leaderboard at %s", cfg.RedisAddr)
		}
		return board
	}
}
