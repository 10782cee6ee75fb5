package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Per-field errors wrap it with a more specific message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidLevel is returned when a flashcard level is outside 0-3.
	ErrInvalidLevel = fmt.Errorf("%w: level must be between 0 and 3", ErrValidation)
)
