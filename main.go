package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucasmeira/pirata-backend/config"
	"github.com/lucasmeira/pirata-backend/routes"
	"github.com/lucasmeira/pirata-backend/services"
	"github.com/lucasmeira/pirata-backend/store"
	"github.com/lucasmeira/pirata-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// initEnv loads .env if present; plain environment variables work too.
func initEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, reading environment variables")
	}
}

func setupRouter(cfg *config.Config, registry *services.Registry, coordinator *services.Coordinator) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsCfg))

	routes.SetupRoutes(r, coordinator)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
			"sessions":  registry.Count(),
		})
	})

	r.GET("/ws/:client_id/:nickname", services.HandleWebSocket(registry, coordinator, logger.Log))

	return r
}

func main() {
	initEnv()
	cfg := config.Load()
	log := logger.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	board := store.Open(ctx, cfg, log)

	if cfg.OpenAIAPIKey == "" {
		log.Errorf("OPENAI_API_KEY not set; every round will use the fallback deck")
	}
	decks := services.NewOpenAIDeckGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, log)

	registry := services.NewRegistry(cfg.GuessCooldown, log)
	coordinator := services.NewCoordinator(decks, board, registry,
		cfg.RoundDuration, cfg.DeckSize, cfg.RoundPause, cfg.TopN, log)

	go coordinator.Run(ctx)

	router := setupRouter(cfg, registry, coordinator)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infof("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	log.Infof("server stopped")
}
