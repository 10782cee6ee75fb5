package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project-specific validation errors. All wrap ErrValidation so callers can
// treat any of them as bad input.
var (
	// ErrProjectIDEmpty is returned when a project ID is empty or nil.
	ErrProjectIDEmpty = fmt.Errorf("%w: project ID cannot be empty", ErrValidation)

	// ErrProjectTitleEmpty is returned when a project title is empty.
	ErrProjectTitleEmpty = fmt.Errorf("%w: project title cannot be empty", ErrValidation)
)

// Project groups uploaded study material and the flashcards generated from it.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject creates a new Project with the given title and description.
// It generates a new UUID for the project ID and sets the timestamps.
// Returns an error if validation fails.
func NewProject(title, description string) (*Project, error) {
	project := &Project{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProjectIDEmpty
	}

	if strings.TrimSpace(p.Title) == "" {
		return ErrProjectTitleEmpty
	}

	return nil
}

// Rename updates the project's title and description and bumps UpdatedAt.
// Returns an error if the new title is invalid.
func (p *Project) Rename(title, description string) error {
	origTitle := p.Title
	p.Title = strings.TrimSpace(title)

	if err := p.Validate(); err != nil {
		p.Title = origTitle
		return err
	}

	p.Description = description
	p.UpdatedAt = time.Now().UTC()
	return nil
}
