package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/platform/logger"
	"github.com/avollmer/studydeck/internal/store"
)

// PostgresFileStore implements the store.FileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFileStore creates a new PostgreSQL implementation of the
// FileStore interface. If logger is nil, a default logger will be used.
func NewPostgresFileStore(db store.DBTX, logger *slog.Logger) *PostgresFileStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFileStore{
		db:     db,
		logger: logger.With(slog.String("component", "file_store")),
	}
}

// Ensure PostgresFileStore implements store.FileStore interface
var _ store.FileStore = (*PostgresFileStore)(nil)

// Create implements store.FileStore.Create
// Returns store.ErrInvalidEntity if the referenced project does not exist.
func (s *PostgresFileStore) Create(ctx context.Context, file *domain.File) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := file.Validate(); err != nil {
		log.Warn("file validation failed during create",
			slog.String("error", err.Error()),
			slog.String("file_id", file.ID.String()))
		return err
	}

	query := `
		INSERT INTO files (id, project_id, original_filename, stored_path, mime_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		file.ID,
		file.ProjectID,
		file.OriginalFilename,
		file.StoredPath,
		file.MimeType,
		file.Size,
		file.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during file creation",
				slog.String("file_id", file.ID.String()),
				slog.String("project_id", file.ProjectID.String()))
			return fmt.Errorf("%w: project with ID %s not found",
				store.ErrInvalidEntity, file.ProjectID)
		}
		log.Error("failed to create file record",
			slog.String("error", err.Error()),
			slog.String("file_id", file.ID.String()))
		return MapError(err)
	}

	log.Info("file record created successfully",
		slog.String("file_id", file.ID.String()),
		slog.String("project_id", file.ProjectID.String()),
		slog.String("filename", file.OriginalFilename))
	return nil
}

// GetByID implements store.FileStore.GetByID
// Returns store.ErrFileNotFound if the record does not exist.
func (s *PostgresFileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, project_id, original_filename, stored_path, mime_type, size_bytes, created_at
		FROM files
		WHERE id = $1
	`

	var file domain.File
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID,
		&file.ProjectID,
		&file.OriginalFilename,
		&file.StoredPath,
		&file.MimeType,
		&file.Size,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("file not found", slog.String("file_id", id.String()))
			return nil, store.ErrFileNotFound
		}
		log.Error("failed to get file by ID",
			slog.String("error", err.Error()),
			slog.String("file_id", id.String()))
		return nil, err
	}

	return &file, nil
}

// ListByProject implements store.FileStore.ListByProject
func (s *PostgresFileStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.File, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, project_id, original_filename, stored_path, mime_type, size_bytes, created_at
		FROM files
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		log.Error("failed to list files",
			slog.String("error", err.Error()),
			slog.String("project_id", projectID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := []*domain.File{}
	for rows.Next() {
		var file domain.File
		if err := rows.Scan(
			&file.ID,
			&file.ProjectID,
			&file.OriginalFilename,
			&file.StoredPath,
			&file.MimeType,
			&file.Size,
			&file.CreatedAt,
		); err != nil {
			log.Error("failed to scan file row", slog.String("error", err.Error()))
			return nil, err
		}
		files = append(files, &file)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// Delete implements store.FileStore.Delete
// Returns store.ErrFileNotFound if the record does not exist.
func (s *PostgresFileStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM files WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete file record",
			slog.String("error", err.Error()),
			slog.String("file_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		log.Debug("file not found during delete", slog.String("file_id", id.String()))
		return store.ErrFileNotFound
	}

	log.Info("file record deleted successfully", slog.String("file_id", id.String()))
	return nil
}

// WithTx implements store.FileStore.WithTx
func (s *PostgresFileStore) WithTx(tx *sql.Tx) store.FileStore {
	return &PostgresFileStore{
		db:     tx,
		logger: s.logger,
	}
}
