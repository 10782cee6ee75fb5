package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrNoJSONFound is returned when a model response contains no JSON
	// object delimiters at all.
	ErrNoJSONFound = errors.New("no JSON found in response")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed
	// or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
