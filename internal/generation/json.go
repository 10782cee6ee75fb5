package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON recovers the first well-formed JSON object embedded in a
// free-form model response. It takes the substring between the first '{'
// and the last '}' (inclusive) and parses it.
//
// This naive delimiter strategy is deliberate: correctness depends on the
// model's discipline to emit exactly one JSON object per response, which
// the prompts demand. Multiple disjoint objects in one response make the
// spanned substring invalid and fail the parse.
func ExtractJSON(raw string) (json.RawMessage, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONFound
	}

	candidate := raw[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrInvalidResponse)
	}

	return json.RawMessage(candidate), nil
}

// asFloat coerces a JSON value that may arrive as a number or a quoted
// numeric string into a float64. Models occasionally quote confidence
// scores despite the schema.
func asFloat(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("%w: confidence is neither number nor string", ErrInvalidResponse)
	}

	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &f); err != nil {
		return 0, fmt.Errorf("%w: confidence %q is not numeric", ErrInvalidResponse, s)
	}
	return f, nil
}
