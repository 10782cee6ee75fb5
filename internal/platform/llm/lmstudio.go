package llm

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// LM Studio serves an OpenAI-compatible API on localhost; the model name is
// a placeholder the server ignores in favor of whatever is loaded.
const (
	// DefaultLMStudioURL is the base URL of a local LM Studio instance.
	DefaultLMStudioURL = "http://127.0.0.1:1234/v1"

	lmstudioModel       = "local-model"
	lmstudioTemperature = 0.3
)

// LMStudioClient implements generation.Client against a local LM Studio
// server. Sampling runs at a fixed low temperature to keep the JSON output
// disciplined.
type LMStudioClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLMStudioClient creates a client for the LM Studio instance at baseURL
// (e.g. "http://127.0.0.1:1234/v1"). An empty baseURL uses the default
// local instance; a zero timeout uses the default of 60s. If logger is nil,
// the default logger is used.
func NewLMStudioClient(baseURL string, timeout time.Duration, logger *slog.Logger) *LMStudioClient {
	if baseURL == "" {
		baseURL = DefaultLMStudioURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LMStudioClient{
		endpoint:   strings.TrimSuffix(baseURL, "/") + "/chat/completions",
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "lmstudio_client")),
	}
}

// Call sends the prompt as a single user message and returns the assistant
// message's text content. HTTP-level failures propagate; no retry.
func (c *LMStudioClient) Call(ctx context.Context, prompt string, maxTokens int) (string, error) {
	c.logger.DebugContext(ctx, "calling LM Studio",
		slog.Int("prompt_length", len(prompt)),
		slog.Int("max_tokens", maxTokens))

	return completeChat(ctx, c.httpClient, c.endpoint, nil, chatRequest{
		Model:       lmstudioModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: lmstudioTemperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	})
}
