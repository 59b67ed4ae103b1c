package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/devlog-dev/devlog/db"
	"github.com/devlog-dev/devlog/internal/auth"
	"github.com/devlog-dev/devlog/internal/config"
	"github.com/devlog-dev/devlog/internal/router"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()

	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := db.Migrate(database); err != nil {
		logger.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Seed {
		if err := db.Seed(context.Background(), database); err != nil {
			logger.Error("failed to seed database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("seeded demo data")
	}

	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	r := router.NewRouter(database, tokens, logger)

	logger.Info("starting server", slog.String("port", cfg.Port))

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
