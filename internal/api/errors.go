package api

import (
	"errors"
	"net/http"

	"github.com/avollmer/studydeck/internal/api/shared"
	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/extractor"
	"github.com/avollmer/studydeck/internal/platform/llm"
	"github.com/avollmer/studydeck/internal/service"
	"github.com/avollmer/studydeck/internal/storage"
	"github.com/avollmer/studydeck/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, storage.ErrArtifactNotFound):
		return http.StatusNotFound

	// Bad request errors: invalid input or request-level misconfiguration.
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, llm.ErrUnknownProvider),
		errors.Is(err, llm.ErrMissingAPIKey),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, storage.ErrUnknownFormat),
		errors.Is(err, extractor.ErrUnsupportedType):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal details stay in the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"
	case errors.Is(err, store.ErrFileNotFound):
		return "File not found"
	case errors.Is(err, store.ErrFlashcardNotFound):
		return "Flashcard not found"
	case errors.Is(err, storage.ErrArtifactNotFound):
		return "Extraction not found"
	case errors.Is(err, llm.ErrMissingAPIKey):
		return "OpenAI API key is required when using the openai provider"
	case errors.Is(err, llm.ErrUnknownProvider):
		return "Unknown provider"
	case errors.Is(err, service.ErrUnknownCategory):
		return "Unknown category"
	case errors.Is(err, storage.ErrUnknownFormat):
		return "Unknown extraction format"
	case errors.Is(err, extractor.ErrUnsupportedType):
		return "Unsupported file type"
	case errors.Is(err, domain.ErrInvalidLevel):
		return "Level must be between 0 and 3"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	default:
		return "An unexpected error occurred"
	}
}

// RespondWithMappedError is the standard error exit for handlers: it maps
// the error to a status code and safe message, logs the original, and
// writes the response.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
