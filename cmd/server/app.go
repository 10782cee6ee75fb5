package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/avollmer/studydeck/internal/config"
	"github.com/avollmer/studydeck/internal/platform/mupdf"
	"github.com/avollmer/studydeck/internal/platform/postgres"
	"github.com/avollmer/studydeck/internal/service"
	"github.com/avollmer/studydeck/internal/storage"
	"github.com/avollmer/studydeck/internal/store"
)

// application holds the shared application dependencies so wiring happens
// in one place and cleanup can close them in order.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	projectStore   store.ProjectStore
	fileStore      store.FileStore
	flashcardStore store.FlashcardStore

	storage       *storage.Storage
	uploadService *service.UploadService
}

// newApplication creates an application instance with all dependencies
// initialized. The config, logger and database connection must already be
// established.
func newApplication(
	_ context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.projectStore = postgres.NewPostgresProjectStore(db, logger)
	app.fileStore = postgres.NewPostgresFileStore(db, logger)
	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)

	var err error
	app.storage, err = storage.New(cfg.Storage.UploadDir, cfg.Storage.ExtractedDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// No OCR engine is wired yet, so scanned PDF pages and image uploads
	// yield empty extractions rather than failing.
	documentExtractor := mupdf.NewExtractor(nil, logger)

	generatorFactory := service.NewLLMGeneratorFactory(cfg.LLM, cfg.Generation, logger)

	app.uploadService = service.NewUploadService(
		db,
		app.projectStore,
		app.fileStore,
		app.flashcardStore,
		app.storage,
		documentExtractor,
		generatorFactory,
		cfg.Generation,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
