package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/domain"
)

// FileStore defines the interface for uploaded-file metadata persistence.
// The file bytes themselves live on disk; the store records where.
type FileStore interface {
	// Create saves a new file record.
	// Returns ErrInvalidEntity if the referenced project does not exist.
	Create(ctx context.Context, file *domain.File) error

	// GetByID retrieves a file record by its unique ID.
	// Returns ErrFileNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error)

	// ListByProject retrieves all file records for a project, newest first.
	// Returns an empty slice when the project has no files.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.File, error)

	// Delete removes a file record.
	// Returns ErrFileNotFound if the record does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new FileStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) FileStore
}
