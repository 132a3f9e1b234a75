package store

import (
	"context"
	"testing"

	"github.com/lucasmeira/pirata-backend/config"
	"go.uber.org/zap"
)

func TestOpenFallsBackToMemoryWhenPostgresUnavailable(t *testing.T) {
	cfg := &config.Config{
		LeaderboardBackend: "postgres",
		DatabaseURL:        "",
	}

	board := Open(context.Background(), cfg, zap.NewNop().Sugar())

	if _, ok := board.(*MemoryLeaderboard); !ok {
		t.Fatalf("expected fallback to *MemoryLeaderboard, got %T", board)
	}
}

func TestOpenMemoryBackend(t *testing.T) {
	cfg := &config.Config{LeaderboardBackend: "memory"}

	board := Open(context.Background(), cfg, zap.NewNop().Sugar())

	if _, ok := board.(*MemoryLeaderboard); !ok {
		t.Fatalf("expected *MemoryLeaderboard, got %T", board)
	}
}

func TestOpenUnknownBackendDefaultsToRedis(t *testing.T) {
	// Redis connects lazily, so no server is needed just to select the
	// backend; the startup ping failure is logged and ignored.
	cfg := &config.Config{
		LeaderboardBackend: "rediss",
		RedisAddr:          "localhost:0",
	}

	board := Open(context.Background(), cfg, zap.NewNop().Sugar())

	if _, ok := board.(*RedisLeaderboard); !ok {
		t.Fatalf("expected *RedisLeaderboard, got %T", board)
	}
}
