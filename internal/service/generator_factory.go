package service

import (
	"context"
	"log/slog"

	"github.com/avollmer/studydeck/internal/config"
	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/generation"
	"github.com/avollmer/studydeck/internal/platform/llm"
)

// Generator produces flashcards for an extracted document.
// generation.CardGenerator satisfies it; tests substitute fakes.
type Generator interface {
	GenerateForDocument(ctx context.Context, doc domain.ProcessedDocument, opts generation.Options) generation.Result
}

// GeneratorFactory builds a Generator for the provider chosen per request.
// Construction performs all configuration validation (unknown provider,
// missing API key), so factories fail before any file is touched.
type GeneratorFactory interface {
	New(provider llm.Provider, apiKey string) (Generator, error)
}

// LLMGeneratorFactory builds generators backed by real LLM clients.
type LLMGeneratorFactory struct {
	llmCfg config.LLMConfig
	genCfg config.GenerationConfig
	logger *slog.Logger
}

// NewLLMGeneratorFactory creates a factory from the application
// configuration. If logger is nil, the default logger is used.
func NewLLMGeneratorFactory(llmCfg config.LLMConfig, genCfg config.GenerationConfig, logger *slog.Logger) *LLMGeneratorFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMGeneratorFactory{
		llmCfg: llmCfg,
		genCfg: genCfg,
		logger: logger,
	}
}

var _ GeneratorFactory = (*LLMGeneratorFactory)(nil)

// New implements GeneratorFactory.New
func (f *LLMGeneratorFactory) New(provider llm.Provider, apiKey string) (Generator, error) {
	client, err := llm.NewClient(provider, apiKey, f.llmCfg, f.logger)
	if err != nil {
		return nil, err
	}
	return generation.NewCardGenerator(client, f.genCfg.ConfidenceThreshold, f.logger), nil
}
