package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/domain"
)

// ProjectWithCount pairs a project with the number of flashcards it holds.
// The count is computed by the store in a single query.
type ProjectWithCount struct {
	domain.Project
	CardCount int
}

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// List retrieves all projects together with their flashcard counts,
	// newest first. Returns an empty slice when no projects exist.
	List(ctx context.Context) ([]ProjectWithCount, error)

	// Update saves changes to an existing project.
	// Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project and, through database cascades, its files
	// and flashcards. Returns ErrProjectNotFound if the project does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProjectStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProjectStore
}
