package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lucasmeira/pirata-backend/config"
)

// Standalone migration entrypoint for the postgres leaderboard backend.
// The server also migrates on connect; this exists for deploy pipelines
// that migrate before rolling the new binary.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if _, err := config.ConnectDB(dsn); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("score table migration completed")
}
