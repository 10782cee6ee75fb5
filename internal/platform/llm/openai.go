package llm

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	openaiEndpoint = "https://api.openai.com/v1/chat/completions"

	// DefaultOpenAIModel is a small, cheap model suitable for flashcard
	// generation.
	DefaultOpenAIModel = "gpt-4.1-nano"

	openaiTemperature = 0.7
)

// OpenAIClient implements generation.Client against the hosted OpenAI
// chat-completions API.
type OpenAIClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenAIClient creates a client for the hosted API. The API key is
// mandatory; construction fails fast with ErrMissingAPIKey before any
// network call can happen. An empty model uses the default; a zero timeout
// uses the default of 60s.
func NewOpenAIClient(apiKey, model string, timeout time.Duration, logger *slog.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenAIClient{
		apiKey:     apiKey,
		model:      model,
		endpoint:   openaiEndpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "openai_client")),
	}, nil
}

// Call sends the prompt as a single user message with a bearer-token header
// and returns the assistant message's text content. HTTP-level failures
// propagate; no retry.
func (c *OpenAIClient) Call(ctx context.Context, prompt string, maxTokens int) (string, error) {
	c.logger.DebugContext(ctx, "calling OpenAI",
		slog.String("model", c.model),
		slog.Int("prompt_length", len(prompt)),
		slog.Int("max_tokens", maxTokens))

	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	return completeChat(ctx, c.httpClient, c.endpoint, headers, chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: openaiTemperature,
		MaxTokens:   maxTokens,
	})
}
