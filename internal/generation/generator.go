package generation

import (
	"context"
	"log/slog"

	"github.com/avollmer/studydeck/internal/domain"
)

// Pipeline modes.
const (
	// ModeTwoStep plans concepts first and then synthesizes verdicts. This
	// is the default.
	ModeTwoStep = "two_step"

	// ModeDirect asks the model for a fixed number of cards in one shot.
	ModeDirect = "direct"
)

// Options carries the per-call tunables of the generation pipeline.
type Options struct {
	// Mode selects two-step or direct generation; anything other than
	// ModeDirect runs the two-step pipeline.
	Mode string

	// CardsPerChunk is the card budget per chunk in direct mode.
	CardsPerChunk int

	// MaxConcepts bounds the planner's concept list per chunk in two-step
	// mode.
	MaxConcepts int

	// DifficultyLevel (0-3) steers prompt phrasing and is stamped onto
	// every generated card.
	DifficultyLevel int
}

// ChunkFailure records a generation step that degraded to empty output for
// one chunk. It is advisory: the pipeline's contract toward callers is
// fewer cards, never an error.
type ChunkFailure struct {
	PageNumber int
	Stage      string
	Err        error
}

// Result is the outcome of generating cards for a whole document: the
// flattened cards in chunk order plus the chunks whose generation degraded.
type Result struct {
	Cards    []domain.GeneratedFlashcard
	Degraded []ChunkFailure
}

// CardGenerator drives the planner and synthesizer across the chunks of a
// processed document. Chunks are processed strictly in document order, one
// blocking LLM round-trip per pipeline stage, never combined and never in
// parallel.
type CardGenerator struct {
	planner     *Planner
	synthesizer *Synthesizer
	logger      *slog.Logger
}

// NewCardGenerator wires a planner and synthesizer around the given LLM
// client. The threshold configures the planner's acceptance gate; zero
// means the default.
func NewCardGenerator(client Client, threshold float64, logger *slog.Logger) *CardGenerator {
	if logger == nil {
		logger = slog.Default()
	}

	return &CardGenerator{
		planner:     NewPlanner(client, threshold, logger),
		synthesizer: NewSynthesizer(client, logger),
		logger:      logger.With(slog.String("component", "card_generator")),
	}
}

// GenerateForDocument runs the pipeline over every chunk of the document in
// order and concatenates the results. Blank chunks produce no cards without
// an LLM call. There is no cross-chunk deduplication: the same concept
// appearing on two pages may yield two cards.
//
// Failures never escalate: a chunk whose planning or synthesis fails
// contributes zero cards and an entry in Result.Degraded.
func (g *CardGenerator) GenerateForDocument(
	ctx context.Context,
	doc domain.ProcessedDocument,
	opts Options,
) Result {
	var result Result

	for _, chunk := range doc.Chunks {
		if chunk.Empty() {
			continue
		}

		cards, failure := g.generateForChunk(ctx, chunk, opts)
		if failure != nil {
			result.Degraded = append(result.Degraded, *failure)
			continue
		}
		result.Cards = append(result.Cards, cards...)
	}

	g.logger.InfoContext(ctx, "document generation completed",
		slog.String("filename", doc.Filename),
		slog.Int("chunks", len(doc.Chunks)),
		slog.Int("cards", len(result.Cards)),
		slog.Int("degraded_chunks", len(result.Degraded)))
	return result
}

// GenerateForText runs the pipeline on a single block of text. Blank text
// yields no cards without an LLM call.
func (g *CardGenerator) GenerateForText(ctx context.Context, text string, opts Options) ([]domain.GeneratedFlashcard, error) {
	chunk := domain.TextChunk{Text: text, PageNumber: 1}
	if chunk.Empty() {
		return nil, nil
	}

	cards, failure := g.generateForChunk(ctx, chunk, opts)
	if failure != nil {
		return nil, failure.Err
	}
	return cards, nil
}

func (g *CardGenerator) generateForChunk(
	ctx context.Context,
	chunk domain.TextChunk,
	opts Options,
) ([]domain.GeneratedFlashcard, *ChunkFailure) {
	if opts.Mode == ModeDirect {
		cards, err := g.synthesizer.Direct(ctx, chunk.Text, opts.CardsPerChunk, opts.DifficultyLevel)
		if err != nil {
			g.logger.WarnContext(ctx, "direct generation degraded to empty",
				slog.Int("page", chunk.PageNumber),
				slog.String("error", err.Error()))
			return nil, &ChunkFailure{PageNumber: chunk.PageNumber, Stage: "direct", Err: err}
		}
		return cards, nil
	}

	concepts, err := g.planner.Plan(ctx, chunk.Text, opts.MaxConcepts)
	if err != nil {
		g.logger.WarnContext(ctx, "concept planning degraded to empty",
			slog.Int("page", chunk.PageNumber),
			slog.String("error", err.Error()))
		return nil, &ChunkFailure{PageNumber: chunk.PageNumber, Stage: "plan", Err: err}
	}

	if len(concepts) == 0 {
		return nil, nil
	}

	cards, err := g.synthesizer.Synthesize(ctx, chunk.Text, concepts, opts.DifficultyLevel)
	if err != nil {
		g.logger.WarnContext(ctx, "card synthesis degraded to empty",
			slog.Int("page", chunk.PageNumber),
			slog.String("error", err.Error()))
		return nil, &ChunkFailure{PageNumber: chunk.PageNumber, Stage: "synthesize", Err: err}
	}

	return cards, nil
}
