package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting, loaded from the environment.
// Defaults match the values the game was tuned with.
type Config struct {
	Port string

	RoundDuration time.Duration // how long a deck stays open for guesses
	DeckSize      int           // cards per round
	RoundPause    time.Duration // pause between round end and the next round
	GuessCooldown time.Duration // minimum gap between accepted guesses per session
	TopN          int           // leaderboard entries sent to clients

	LeaderboardBackend string // redis | postgres | memory
	RedisAddr          string
	DatabaseURL        string

	OpenAIAPIKey string
	OpenAIModel  string

	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Port:               envString("PORT", "8000"),
		RoundDuration:      envDuration("ROUND_DURATION", 60*time.Second),
		DeckSize:           envInt("DECK_SIZE", 20),
		RoundPause:         envDuration("ROUND_PAUSE", 5*time.Second),
		GuessCooldown:      envDuration("GUESS_COOLDOWN", 300*time.Millisecond),
		TopN:               envInt("LEADERBOARD_TOP_N", 10),
		LeaderboardBackend: envString("LEADERBOARD_BACKEND", "redis"),
		RedisAddr:          envString("REDIS_ADDR", "localhost:6379"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        envString("OPENAI_MODEL", "gpt-4o-mini"),
		AllowedOrigins:     envList("ALLOWED_ORIGINS", []string{"*"}),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
