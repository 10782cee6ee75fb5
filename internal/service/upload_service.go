package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/config"
	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/extractor"
	"github.com/avollmer/studydeck/internal/generation"
	"github.com/avollmer/studydeck/internal/platform/llm"
	"github.com/avollmer/studydeck/internal/platform/logger"
	"github.com/avollmer/studydeck/internal/storage"
	"github.com/avollmer/studydeck/internal/store"
)

// UploadRequest carries the validated knobs of one upload call. Provider
// and Category are parsed before construction; Difficulty is clamped by the
// handler to the valid card level range.
type UploadRequest struct {
	ProjectID    uuid.UUID
	Provider     llm.Provider
	OpenAIAPIKey string
	Category     Category
	Difficulty   int
}

// UploadedFile is one file of a multipart upload.
type UploadedFile struct {
	Filename string
	MimeType string
	Content  io.Reader
}

// FileResult reports the outcome of one successfully processed file.
type FileResult struct {
	File           *domain.File
	Processed      domain.ProcessedDocument
	CardsGenerated int
	DegradedChunks int
}

// UploadService runs the per-file pipeline: store bytes, record metadata,
// extract text, write extraction artifacts, generate flashcards, persist
// them. One bad file logs and is skipped; generation failures degrade to
// zero cards without failing the file.
type UploadService struct {
	db         *sql.DB
	projects   store.ProjectStore
	files      store.FileStore
	cards      store.FlashcardStore
	storage    *storage.Storage
	extractor  extractor.Extractor
	generators GeneratorFactory
	genCfg     config.GenerationConfig
	logger     *slog.Logger

	// runInTx wraps store.RunInTransaction; tests replace it to run the
	// batch insert without a live database.
	runInTx func(ctx context.Context, fn store.TxFn) error
}

// NewUploadService wires the upload pipeline. All dependencies are
// required except logger, which falls back to the default.
func NewUploadService(
	db *sql.DB,
	projects store.ProjectStore,
	files store.FileStore,
	cards store.FlashcardStore,
	fileStorage *storage.Storage,
	ext extractor.Extractor,
	generators GeneratorFactory,
	genCfg config.GenerationConfig,
	log *slog.Logger,
) *UploadService {
	if log == nil {
		log = slog.Default()
	}

	s := &UploadService{
		db:         db,
		projects:   projects,
		files:      files,
		cards:      cards,
		storage:    fileStorage,
		extractor:  ext,
		generators: generators,
		genCfg:     genCfg,
		logger:     log.With(slog.String("component", "upload_service")),
	}
	s.runInTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// Upload processes all files of one upload request. Configuration problems
// (missing project, bad provider setup) fail the whole call before any file
// is stored; per-file failures are logged and skipped. The returned slice
// holds one entry per successfully processed file, in upload order.
func (s *UploadService) Upload(ctx context.Context, req UploadRequest, uploads []UploadedFile) ([]FileResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	// Fail fast on provider misconfiguration before touching any file.
	generator, err := s.generators.New(req.Provider, req.OpenAIAPIKey)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(uploads))
	for _, upload := range uploads {
		result, err := s.processFile(ctx, req, upload, generator)
		if err != nil {
			log.Error("failed to process uploaded file",
				slog.String("filename", upload.Filename),
				slog.String("project_id", req.ProjectID.String()),
				slog.String("error", err.Error()))
			continue
		}
		results = append(results, result)
	}

	log.Info("upload processed",
		slog.String("project_id", req.ProjectID.String()),
		slog.String("category", string(req.Category)),
		slog.Int("files_received", len(uploads)),
		slog.Int("files_processed", len(results)))

	return results, nil
}

func (s *UploadService) processFile(
	ctx context.Context,
	req UploadRequest,
	upload UploadedFile,
	generator Generator,
) (FileResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !extractor.SupportedExtension(upload.Filename) {
		return FileResult{}, fmt.Errorf("%w: %s", extractor.ErrUnsupportedType, upload.Filename)
	}

	path, size, err := s.storage.SaveUpload(req.ProjectID, upload.Filename, upload.Content)
	if err != nil {
		return FileResult{}, err
	}

	file, err := domain.NewFile(req.ProjectID, upload.Filename, path, upload.MimeType, size)
	if err != nil {
		_ = s.storage.RemoveUpload(path)
		return FileResult{}, err
	}
	if err := s.files.Create(ctx, file); err != nil {
		_ = s.storage.RemoveUpload(path)
		return FileResult{}, err
	}

	processed, err := s.extractor.Process(ctx, path, upload.Filename)
	if err != nil {
		return FileResult{}, err
	}

	if err := s.storage.WriteArtifacts(file.ID, processed); err != nil {
		return FileResult{}, err
	}

	generated := generator.GenerateForDocument(ctx, processed, generation.Options{
		Mode:            s.genCfg.Mode,
		CardsPerChunk:   s.genCfg.CardsPerChunk,
		MaxConcepts:     s.genCfg.MaxConcepts,
		DifficultyLevel: req.Difficulty,
	})
	for _, failure := range generated.Degraded {
		log.Warn("chunk generation degraded to empty",
			slog.String("file_id", file.ID.String()),
			slog.Int("page", failure.PageNumber),
			slog.String("stage", failure.Stage),
			slog.String("error", failure.Err.Error()))
	}

	if err := s.persistCards(ctx, req.ProjectID, generated.Cards); err != nil {
		// Cards are a best-effort product of the upload; the stored file
		// and extraction artifacts stay.
		log.Error("failed to persist generated flashcards",
			slog.String("file_id", file.ID.String()),
			slog.String("error", err.Error()))
	}

	return FileResult{
		File:           file,
		Processed:      processed,
		CardsGenerated: len(generated.Cards),
		DegradedChunks: len(generated.Degraded),
	}, nil
}

// persistCards writes all generated cards in one transaction so a partial
// deck never becomes visible.
func (s *UploadService) persistCards(ctx context.Context, projectID uuid.UUID, cards []domain.GeneratedFlashcard) error {
	if len(cards) == 0 {
		return nil
	}

	now := time.Now().UTC()
	flashcards := make([]*domain.Flashcard, 0, len(cards))
	for _, card := range cards {
		fc, err := domain.NewFlashcard(projectID, card.Question, card.Answer, card.Level)
		if err != nil {
			return err
		}
		fc.CreatedAt = now
		fc.UpdatedAt = now
		flashcards = append(flashcards, fc)
	}

	return s.runInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.cards.WithTx(tx).CreateBatch(ctx, flashcards)
	})
}

// DeleteFile removes a file's database row, its stored bytes, and its
// extraction artifacts. Returns store.ErrFileNotFound when the row does not
// exist or belongs to a different project.
func (s *UploadService) DeleteFile(ctx context.Context, projectID, fileID uuid.UUID) error {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file.ProjectID != projectID {
		return store.ErrFileNotFound
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return err
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	if err := s.storage.RemoveUpload(file.StoredPath); err != nil {
		log.Warn("failed to remove stored upload",
			slog.String("file_id", fileID.String()),
			slog.String("error", err.Error()))
	}
	if err := s.storage.RemoveArtifacts(fileID); err != nil {
		log.Warn("failed to remove extraction artifacts",
			slog.String("file_id", fileID.String()),
			slog.String("error", err.Error()))
	}

	return nil
}
