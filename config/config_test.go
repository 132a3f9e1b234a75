package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.RoundDuration != 60*time.Second {
		t.Fatalf("expected 60s round duration, got %v", cfg.RoundDuration)
	}
	if cfg.DeckSize != 20 {
		t.Fatalf("expected deck size 20, got %d", cfg.DeckSize)
	}
	if cfg.RoundPause != 5*time.Second {
		t.Fatalf("expected 5s pause, got %v", cfg.RoundPause)
	}
	if cfg.GuessCooldown != 300*time.Millisecond {
		t.Fatalf("expected 300ms cooldown, got %v", cfg.GuessCooldown)
	}
	if cfg.LeaderboardBackend != "redis" {
		t.Fatalf("expected redis backend, got %q", cfg.LeaderboardBackend)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ROUND_DURATION", "90s")
	t.Setenv("DECK_SIZE", "12")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	if cfg.RoundDuration != 90*time.Second {
		t.Fatalf("expected 90s, got %v", cfg.RoundDuration)
	}
	if cfg.DeckSize != 12 {
		t.Fatalf("expected 12, got %d", cfg.DeckSize)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestInvalidEnvFallsBackToDefaults(t *testing.T) {
	t.Setenv("ROUND_DURATION", "soon")
	t.Setenv("DECK_SIZE", "-3")

	cfg := Load()
	if cfg.RoundDuration != 60*time.Second {
		t.Fatalf("expected default duration, got %v", cfg.RoundDuration)
	}
	if cfg.DeckSize != 20 {
		t.Fatalf("expected default deck size, got %d", cfg.DeckSize)
	}
}
