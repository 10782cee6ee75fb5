package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/platform/logger"
	"github.com/avollmer/studydeck/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const flashcardInsertQuery = `
	INSERT INTO flashcards (id, project_id, question, answer, level, important, review_count, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Create implements store.FlashcardStore.Create
// Returns store.ErrInvalidEntity if the referenced project does not exist.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		flashcardInsertQuery,
		card.ID,
		card.ProjectID,
		card.Question,
		card.Answer,
		card.Level,
		card.Important,
		card.ReviewCount,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during flashcard creation",
				slog.String("flashcard_id", card.ID.String()),
				slog.String("project_id", card.ProjectID.String()))
			return fmt.Errorf("%w: project with ID %s not found",
				store.ErrInvalidEntity, card.ProjectID)
		}
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return MapError(err)
	}

	log.Info("flashcard created successfully",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("project_id", card.ProjectID.String()))
	return nil
}

// CreateBatch implements store.FlashcardStore.CreateBatch
// The caller is expected to run this inside a transaction when atomicity
// across other writes matters; on its own it inserts card by card and stops
// at the first failure.
func (s *PostgresFlashcardStore) CreateBatch(ctx context.Context, cards []*domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("flashcard validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return err
		}
	}

	stmt, err := s.db.PrepareContext(ctx, flashcardInsertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare flashcard insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, card := range cards {
		_, err := stmt.ExecContext(
			ctx,
			card.ID,
			card.ProjectID,
			card.Question,
			card.Answer,
			card.Level,
			card.Important,
			card.ReviewCount,
			card.CreatedAt,
			card.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to insert flashcard in batch",
				slog.String("error", err.Error()),
				slog.String("flashcard_id", card.ID.String()))
			return MapError(err)
		}
	}

	log.Info("flashcard batch created successfully",
		slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.FlashcardStore.GetByID
// Returns store.ErrFlashcardNotFound if the flashcard does not exist.
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, project_id, question, answer, level, important, review_count, created_at, updated_at
		FROM flashcards
		WHERE id = $1
	`

	var card domain.Flashcard
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.ProjectID,
		&card.Question,
		&card.Answer,
		&card.Level,
		&card.Important,
		&card.ReviewCount,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.String("flashcard_id", id.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to get flashcard by ID",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return nil, err
	}

	return &card, nil
}

// ListByProject implements store.FlashcardStore.ListByProject
// Cards come back in creation order so generated decks keep their document
// order.
func (s *PostgresFlashcardStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, project_id, question, answer, level, important, review_count, created_at, updated_at
		FROM flashcards
		WHERE project_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("project_id", projectID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(
			&card.ID,
			&card.ProjectID,
			&card.Question,
			&card.Answer,
			&card.Level,
			&card.Important,
			&card.ReviewCount,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			log.Error("failed to scan flashcard row", slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// CountByProject implements store.FlashcardStore.CountByProject
func (s *PostgresFlashcardStore) CountByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM flashcards WHERE project_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count flashcards: %w", err)
	}
	return count, nil
}

// Update implements store.FlashcardStore.Update
// Returns store.ErrFlashcardNotFound if the flashcard does not exist.
func (s *PostgresFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during update",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	card.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE flashcards
		SET question = $1, answer = $2, level = $3, important = $4, review_count = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.Question,
		card.Answer,
		card.Level,
		card.Important,
		card.ReviewCount,
		card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("flashcard not found during update",
			slog.String("flashcard_id", card.ID.String()))
		return store.ErrFlashcardNotFound
	}

	log.Info("flashcard updated successfully",
		slog.String("flashcard_id", card.ID.String()),
		slog.Int("level", card.Level))
	return nil
}

// Delete implements store.FlashcardStore.Delete
// Returns store.ErrFlashcardNotFound if the flashcard does not exist.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM flashcards WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("flashcard not found during delete",
			slog.String("flashcard_id", id.String()))
		return store.ErrFlashcardNotFound
	}

	log.Info("flashcard deleted successfully", slog.String("flashcard_id", id.String()))
	return nil
}

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{
		db:     tx,
		logger: s.logger,
	}
}
