package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinLevel and MaxLevel bound the difficulty/progress tag on a flashcard.
// The same 0-3 scale steers generation prompts and tracks study progress.
const (
	MinLevel = 0
	MaxLevel = 3
)

// Flashcard-specific validation errors. All wrap ErrValidation so callers
// can treat any of them as bad input.
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = fmt.Errorf("%w: flashcard ID cannot be empty", ErrValidation)

	// ErrFlashcardProjectIDEmpty is returned when a flashcard's project ID is empty or nil.
	ErrFlashcardProjectIDEmpty = fmt.Errorf("%w: flashcard project ID cannot be empty", ErrValidation)

	// ErrFlashcardQuestionEmpty is returned when a flashcard question is empty.
	ErrFlashcardQuestionEmpty = fmt.Errorf("%w: flashcard question cannot be empty", ErrValidation)

	// ErrFlashcardAnswerEmpty is returned when a flashcard answer is empty.
	ErrFlashcardAnswerEmpty = fmt.Errorf("%w: flashcard answer cannot be empty", ErrValidation)
)

// Flashcard is a persisted question/answer pair owned by a project.
// Level doubles as the difficulty tag stamped at generation time and the
// study-progress indicator; Important and ReviewCount are study bookkeeping.
type Flashcard struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Level       int       `json:"level"`
	Important   int       `json:"important"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard with the given question, answer, and level.
// It generates a new UUID for the card ID and sets the timestamps.
// Returns an error if validation fails.
func NewFlashcard(projectID uuid.UUID, question, answer string, level int) (*Flashcard, error) {
	card := &Flashcard{
		ID:        uuid.New(),
		ProjectID: projectID,
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		Level:     level,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}

	if c.ProjectID == uuid.Nil {
		return ErrFlashcardProjectIDEmpty
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrFlashcardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrFlashcardAnswerEmpty
	}

	if c.Level < MinLevel || c.Level > MaxLevel {
		return ErrInvalidLevel
	}

	if c.ReviewCount < 0 {
		return ErrValidation
	}

	return nil
}

// SetLevel moves the card to a new level as part of a study review. When
// explicitReviewCount is nil the stored review count is incremented by one;
// otherwise it is overwritten. The level change and the review count always
// move together.
func (c *Flashcard) SetLevel(level int, explicitReviewCount *int) error {
	if level < MinLevel || level > MaxLevel {
		return ErrInvalidLevel
	}

	c.Level = level
	if explicitReviewCount != nil {
		if *explicitReviewCount < 0 {
			return ErrValidation
		}
		c.ReviewCount = *explicitReviewCount
	} else {
		c.ReviewCount++
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}
