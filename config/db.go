package config

import (
	"fmt"

	"github.com/lucasmeira/pirata-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the Postgres connection used by the postgres leaderboard
// backend and migrates the score table. A connect failure is returned, not
// fatal: the caller decides whether to fall back to another store.
func ConnectDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres leaderboard backend")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&models.ScoreEntry{}); err != nil {
		return nil, fmt.Errorf("migrate score entries: %w", err)
	}

	return db, nil
}
