package generation

import "context"

// Client is the boundary between the generation pipeline and an LLM
// backend. Implementations send a single-prompt chat completion and return
// the assistant message's text content verbatim.
//
// Any HTTP-level failure (non-2xx status, timeout, malformed envelope)
// propagates as an error; retries are the caller's concern, and this
// pipeline deliberately performs none.
type Client interface {
	// Call sends the prompt and returns the raw response text.
	Call(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// defaultMaxTokens bounds the response size of every pipeline call.
const defaultMaxTokens = 2000
