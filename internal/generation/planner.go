package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avollmer/studydeck/internal/domain"
)

// DefaultConfidenceThreshold is the planner's acceptance gate when no
// explicit threshold is configured.
const DefaultConfidenceThreshold = 0.6

// Planner runs the first pipeline step: asking the model for candidate
// flashcard concepts and filtering them against the acceptance gate.
type Planner struct {
	client    Client
	logger    *slog.Logger
	threshold float64
}

// NewPlanner creates a Planner using the given LLM client. A threshold of
// zero or less falls back to DefaultConfidenceThreshold. If logger is nil,
// the default logger is used.
func NewPlanner(client Client, threshold float64, logger *slog.Logger) *Planner {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("client cannot be nil for Planner")
	}

	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Planner{
		client:    client,
		logger:    logger.With(slog.String("component", "concept_planner")),
		threshold: threshold,
	}
}

// conceptSchema mirrors one element of the planning response. Confidence is
// kept raw so quoted numbers can still be coerced.
type conceptSchema struct {
	ID             string          `json:"id"`
	Concept        string          `json:"concept"`
	Question       string          `json:"question"`
	Evidence       string          `json:"evidence"`
	Confidence     json.RawMessage `json:"confidence"`
	ShouldGenerate bool            `json:"should_generate"`
}

// planEnvelope is the outer shape of the planning response. Elements stay
// raw so one malformed concept cannot sink the rest of the array.
type planEnvelope struct {
	Concepts []json.RawMessage `json:"concepts"`
}

// Plan asks the model for up to maxConcepts concepts grounded in text and
// returns the ones passing the acceptance gate (should_generate set and
// confidence at or above the threshold). The returned slice may be empty.
//
// A transport or parse failure for the whole call is returned as an error;
// the orchestrator treats it as zero concepts for the chunk, so it never
// surfaces past the generation boundary.
func (p *Planner) Plan(ctx context.Context, text string, maxConcepts int) ([]domain.PlannedConcept, error) {
	prompt, err := renderPrompt(planningTmpl, planningPromptData{
		MaxConcepts: maxConcepts,
		Text:        text,
	})
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Call(ctx, prompt, defaultMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("planning call failed: %w", err)
	}

	raw, err := ExtractJSON(resp)
	if err != nil {
		return nil, fmt.Errorf("planning response: %w", err)
	}

	var envelope planEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: planning envelope: %v", ErrInvalidResponse, err)
	}

	log := p.logger
	concepts := make([]domain.PlannedConcept, 0, len(envelope.Concepts))
	for i, element := range envelope.Concepts {
		concept, ok := p.decodeConcept(ctx, i, element)
		if !ok {
			continue
		}

		// Hard filter: gate on the model's own verdict and confidence.
		if !concept.ShouldGenerate || concept.Confidence < p.threshold {
			log.DebugContext(ctx, "concept rejected by acceptance gate",
				slog.String("concept_id", concept.ID),
				slog.Float64("confidence", concept.Confidence),
				slog.Bool("should_generate", concept.ShouldGenerate))
			continue
		}

		concepts = append(concepts, concept)
	}

	log.DebugContext(ctx, "planning completed",
		slog.Int("proposed", len(envelope.Concepts)),
		slog.Int("accepted", len(concepts)))
	return concepts, nil
}

// decodeConcept coerces one raw array element into a PlannedConcept. A
// malformed element is skipped individually, never fatal to the whole call.
func (p *Planner) decodeConcept(ctx context.Context, index int, element json.RawMessage) (domain.PlannedConcept, bool) {
	var schema conceptSchema
	if err := json.Unmarshal(element, &schema); err != nil {
		p.logger.WarnContext(ctx, "skipping malformed concept element",
			slog.Int("index", index),
			slog.String("error", err.Error()))
		return domain.PlannedConcept{}, false
	}

	if schema.ID == "" || schema.Concept == "" || schema.Question == "" || schema.Evidence == "" {
		p.logger.WarnContext(ctx, "skipping concept with missing fields",
			slog.Int("index", index),
			slog.String("concept_id", schema.ID))
		return domain.PlannedConcept{}, false
	}

	confidence, err := asFloat(schema.Confidence)
	if err != nil {
		p.logger.WarnContext(ctx, "skipping concept with unusable confidence",
			slog.Int("index", index),
			slog.String("concept_id", schema.ID),
			slog.String("error", err.Error()))
		return domain.PlannedConcept{}, false
	}

	return domain.PlannedConcept{
		ID:             schema.ID,
		Concept:        strings.TrimSpace(schema.Concept),
		Question:       strings.TrimSpace(schema.Question),
		Evidence:       strings.TrimSpace(schema.Evidence),
		Confidence:     confidence,
		ShouldGenerate: schema.ShouldGenerate,
	}, true
}
