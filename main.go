package main

import (
	"os"
	"os/signal"
	"syscall"

	"ludoteca/internal/config"
	"ludoteca/internal/logging"
	"ludoteca/internal/repositories"
	"ludoteca/internal/server"
	"ludoteca/internal/services"
	"ludoteca/pkg/rabbitmq"
	"ludoteca/pkg/rawg"
)

func main() {
	// --- Configuration ---
	// Refuse to start without a signing secret.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// --- Storage ---
	var (
		userRepo repositories.UserRepository
		gameRepo repositories.GameRepository
	)
	if cfg.DatabaseDriver == "memory" {
		logging.Warn().Msg("using in-memory storage, data is lost on restart")
		userRepo = repositories.NewMemoryUserRepository()
		gameRepo = repositories.NewMemoryGameRepository()
	} else {
		db, err := repositories.OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			logging.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("failed to open database")
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		userRepo = repositories.NewGORMUserRepository(db)
		gameRepo = repositories.NewGORMGameRepository(db)
	}

	// --- Events ---
	// Publishing is optional; without RABBITMQ_URL game events are dropped.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.EventsQueue})
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.ConsumeGameEvents(rabbitmq.LogGameEvent); err != nil {
			logging.Error().Err(err).Msg("failed to start game event consumer")
		}
	}

	// --- Catalog ---
	catalog := rawg.NewClient(rawg.Config{BaseURL: cfg.RawgBaseURL, APIKey: cfg.RawgAPIKey})
	if !catalog.Configured() {
		logging.Warn().Msg("RAWG_API_KEY is not set, catalog routes will fail")
	}

	app, err := server.NewApp(server.Dependencies{
		Config:    cfg,
		Users:     userRepo,
		Games:     gameRepo,
		Events:    events,
		Catalog:   catalog,
		AccessLog: true,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build app")
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logging.Info().Str("addr", cfg.AppPort).Str("env", cfg.AppEnv).Msg("starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			logging.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logging.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		logging.Error().Err(err).Msg("error during fiber shutdown")
	}
	logging.Info().Msg("server gracefully stopped")
}
