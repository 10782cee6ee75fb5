package llm

import "errors"

// Configuration errors surfaced before any network call is made.
var (
	// ErrUnknownProvider is returned for a provider selection outside the
	// supported set.
	ErrUnknownProvider = errors.New("unknown LLM provider")

	// ErrMissingAPIKey is returned when the hosted provider is selected
	// without an API key.
	ErrMissingAPIKey = errors.New("OpenAI API key is required when using the openai provider")
)
