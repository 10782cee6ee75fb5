package llm

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/avollmer/studydeck/internal/config"
	"github.com/avollmer/studydeck/internal/generation"
)

// Provider identifies an LLM backend.
type Provider string

// Supported providers.
const (
	// ProviderLMStudio is the local inference server.
	ProviderLMStudio Provider = "lmstudio"

	// ProviderOpenAI is the hosted API.
	ProviderOpenAI Provider = "openai"
)

// ParseProvider validates a caller-supplied provider name. An empty name
// defaults to the local provider.
func ParseProvider(name string) (Provider, error) {
	switch Provider(name) {
	case ProviderLMStudio, "":
		return ProviderLMStudio, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// NewClient builds a generation.Client for the given provider. apiKey is
// the request-supplied OpenAI key; when empty, the configured server-side
// default is used. Configuration errors (unknown provider, missing key for
// the hosted provider) are returned before any network activity.
func NewClient(provider Provider, apiKey string, cfg config.LLMConfig, logger *slog.Logger) (generation.Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch provider {
	case ProviderLMStudio:
		return NewLMStudioClient(cfg.LMStudioURL, timeout, logger), nil
	case ProviderOpenAI:
		if apiKey == "" {
			apiKey = cfg.OpenAIAPIKey
		}
		return NewOpenAIClient(apiKey, cfg.OpenAIModel, timeout, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
