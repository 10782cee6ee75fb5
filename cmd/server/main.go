// Package main implements the entry point for the StudyDeck API server,
// which manages study projects, document uploads, text extraction and
// LLM-backed flashcard generation.
package main

import (
	"context"
	"log"

	"github.com/avollmer/studydeck/internal/config"
	"github.com/avollmer/studydeck/internal/platform/logger"
	"github.com/avollmer/studydeck/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run initializes every subsystem in dependency order and blocks until the
// server shuts down. Kept separate from main so initialization failures
// propagate as errors instead of os.Exit calls scattered around.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return err
	}
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"generation_mode", cfg.Generation.Mode)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if err := postgres.RunMigrations(db); err != nil {
		return err
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
