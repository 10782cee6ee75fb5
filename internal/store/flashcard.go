package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/domain"
)

// FlashcardStore defines the interface for flashcard data persistence.
type FlashcardStore interface {
	// Create saves a new flashcard.
	// Returns ErrInvalidEntity if the referenced project does not exist.
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateBatch saves multiple flashcards. Implementations should insert
	// all cards atomically; a failure leaves none of them persisted.
	CreateBatch(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// ListByProject retrieves all flashcards for a project in creation
	// order. Returns an empty slice when the project has no flashcards.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Flashcard, error)

	// CountByProject returns the number of flashcards in a project.
	CountByProject(ctx context.Context, projectID uuid.UUID) (int, error)

	// Update saves changes to an existing flashcard.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	Update(ctx context.Context, card *domain.Flashcard) error

	// Delete removes a flashcard.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new FlashcardStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
