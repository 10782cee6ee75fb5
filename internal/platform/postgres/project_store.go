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

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the
// ProjectStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresProjectStore(db store.DBTX, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

// Ensure PostgresProjectStore implements store.ProjectStore interface
var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// Create implements store.ProjectStore.Create
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	query := `
		INSERT INTO projects (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		project.ID,
		project.Title,
		project.Description,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	log.Info("project created successfully",
		slog.String("project_id", project.ID.String()),
		slog.String("title", project.Title))
	return nil
}

// GetByID implements store.ProjectStore.GetByID
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project domain.Project
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("project not found", slog.String("project_id", id.String()))
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project by ID",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return nil, err
	}

	return &project, nil
}

// List implements store.ProjectStore.List
// Flashcard counts come from a LEFT JOIN so empty projects still appear.
func (s *PostgresProjectStore) List(ctx context.Context) ([]store.ProjectWithCount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT p.id, p.title, p.description, p.created_at, p.updated_at,
		       COUNT(f.id) AS card_count
		FROM projects p
		LEFT JOIN flashcards f ON f.project_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	projects := []store.ProjectWithCount{}
	for rows.Next() {
		var p store.ProjectWithCount
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.CardCount,
		); err != nil {
			log.Error("failed to scan project row", slog.String("error", err.Error()))
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// Update implements store.ProjectStore.Update
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during update",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	project.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE projects
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		project.Title,
		project.Description,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		log.Error("failed to update project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("project not found during update",
			slog.String("project_id", project.ID.String()))
		return store.ErrProjectNotFound
	}

	log.Info("project updated successfully",
		slog.String("project_id", project.ID.String()))
	return nil
}

// Delete implements store.ProjectStore.Delete
// Files and flashcards belonging to the project are removed by ON DELETE
// CASCADE constraints.
func (s *PostgresProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM projects WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("project not found during delete",
			slog.String("project_id", id.String()))
		return store.ErrProjectNotFound
	}

	log.Info("project deleted successfully",
		slog.String("project_id", id.String()))
	return nil
}

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{
		db:     tx,
		logger: s.logger,
	}
}
