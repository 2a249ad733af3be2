package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/wheelwise/internal/config"
	"github.com/aristath/wheelwise/internal/database"
	"github.com/aristath/wheelwise/internal/modules/advisor"
	"github.com/aristath/wheelwise/internal/modules/trading"
	"github.com/aristath/wheelwise/internal/scheduler"
	"github.com/aristath/wheelwise/internal/server"
	"github.com/aristath/wheelwise/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(logger.Config{
		Level:  "info",
		Pretty: true,
	})

	log.Info().Msg("Starting WheelWise")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize AI advisor (disabled without an API key)
	adv, err := advisor.New(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI advisor")
	}

	// Initialize scheduler and background jobs
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	tradeRepo := trading.NewTradeRepository(db.Conn(), log)
	snapshotJob := scheduler.NewStatsSnapshotJob(db.Conn(), tradeRepo, log)
	if err := sched.AddJob("@daily", snapshotJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DB:      db,
		Config:  cfg,
		Advisor: adv,
		DevMode: cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
