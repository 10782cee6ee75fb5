package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avollmer/studydeck/internal/domain"
)

// Synthesizer runs the second pipeline step: turning accepted concepts into
// question/answer pairs, one verdict per concept. It also implements the
// legacy direct mode that skips planning entirely.
type Synthesizer struct {
	client Client
	logger *slog.Logger
}

// NewSynthesizer creates a Synthesizer using the given LLM client. If
// logger is nil, the default logger is used.
func NewSynthesizer(client Client, logger *slog.Logger) *Synthesizer {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil for Synthesizer")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Synthesizer{
		client: client,
		logger: logger.With(slog.String("component", "card_synthesizer")),
	}
}

// verdictEnvelope is the outer shape of the synthesis response.
type verdictEnvelope struct {
	Results []json.RawMessage `json:"results"`
}

// flashcardEnvelope is the outer shape of the direct-mode response.
type flashcardEnvelope struct {
	Flashcards []json.RawMessage `json:"flashcards"`
}

// Synthesize asks the model for exactly one verdict per concept and emits a
// GeneratedFlashcard for each "ok" verdict carrying a non-empty question and
// answer, stamped with level. Skipped verdicts and malformed elements yield
// nothing for that concept; no error is surfaced for them. Whole-call
// failures are returned as an error and degrade to zero cards upstream.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	text string,
	concepts []domain.PlannedConcept,
	level int,
) ([]domain.GeneratedFlashcard, error) {
	conceptsJSON, err := json.MarshalIndent(concepts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize concepts: %w", err)
	}

	prompt, err := renderPrompt(synthesisTmpl, synthesisPromptData{
		Difficulty:   describeDifficulty(level),
		Text:         text,
		ConceptsJSON: string(conceptsJSON),
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Call(ctx, prompt, defaultMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("synthesis call failed: %w", err)
	}

	raw, err := ExtractJSON(resp)
	if err != nil {
		return nil, fmt.Errorf("synthesis response: %w", err)
	}

	var envelope verdictEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: synthesis envelope: %v", ErrInvalidResponse, err)
	}

	cards := make([]domain.GeneratedFlashcard, 0, len(envelope.Results))
	for i, element := range envelope.Results {
		var verdict domain.CardVerdict
		if err := json.Unmarshal(element, &verdict); err != nil {
			s.logger.WarnContext(ctx, "skipping malformed verdict element",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			continue
		}

		if verdict.Status != domain.VerdictOK {
			s.logger.DebugContext(ctx, "concept skipped by synthesizer",
				slog.String("concept_id", verdict.ConceptID),
				slog.String("reason", verdict.Reason))
			continue
		}

		card := domain.GeneratedFlashcard{
			Question: strings.TrimSpace(verdict.Question),
			Answer:   strings.TrimSpace(verdict.Answer),
			Level:    level,
		}
		if !card.Valid() {
			s.logger.DebugContext(ctx, "dropping ok verdict with empty question or answer",
				slog.String("concept_id", verdict.ConceptID))
			continue
		}

		cards = append(cards, card)
	}

	s.logger.DebugContext(ctx, "synthesis completed",
		slog.Int("concepts", len(concepts)),
		slog.Int("verdicts", len(envelope.Results)),
		slog.Int("cards", len(cards)))
	return cards, nil
}

// Direct is the legacy single-shot mode: ask the model for exactly numCards
// flashcards from the text with the same anti-hedging constraints, skipping
// the planning step.
func (s *Synthesizer) Direct(
	ctx context.Context,
	text string,
	numCards int,
	level int,
) ([]domain.GeneratedFlashcard, error) {
	if numCards <= 0 {
		return nil, fmt.Errorf("%w: cards per chunk must be positive, got %d",
			ErrInvalidConfig, numCards)
	}

	prompt, err := renderPrompt(directTmpl, directPromptData{
		NumCards:   numCards,
		Difficulty: describeDifficulty(level),
		Text:       text,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Call(ctx, prompt, defaultMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("direct generation call failed: %w", err)
	}

	raw, err := ExtractJSON(resp)
	if err != nil {
		return nil, fmt.Errorf("direct generation response: %w", err)
	}

	var envelope flashcardEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: flashcard envelope: %v", ErrInvalidResponse, err)
	}

	cards := make([]domain.GeneratedFlashcard, 0, len(envelope.Flashcards))
	for i, element := range envelope.Flashcards {
		var card domain.GeneratedFlashcard
		if err := json.Unmarshal(element, &card); err != nil {
			s.logger.WarnContext(ctx, "skipping malformed flashcard element",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			continue
		}

		card.Question = strings.TrimSpace(card.Question)
		card.Answer = strings.TrimSpace(card.Answer)
		card.Level = level
		if !card.Valid() {
			continue
		}

		cards = append(cards, card)
	}

	return cards, nil
}
