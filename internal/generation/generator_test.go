package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/avollmer/studydeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mitochondriaText = "The mitochondria is the powerhouse of the cell."

func mitochondriaResponses() [2]string {
	return [2]string{
		`{
			"concepts": [
				{"id": "c1", "concept": "Mitochondria",
				 "question": "What is the powerhouse of the cell?",
				 "evidence": "the mitochondria is the powerhouse of the cell",
				 "confidence": 0.9, "should_generate": true}
			]
		}`,
		`{
			"results": [
				{"concept_id": "c1", "status": "ok",
				 "question": "What is the powerhouse of the cell?",
				 "answer": "The mitochondria."}
			]
		}`,
	}
}

func TestGenerateForDocumentTwoChunkScenario(t *testing.T) {
	t.Parallel()

	client := &keyedClient{responses: map[string][2]string{
		mitochondriaText: mitochondriaResponses(),
	}}
	generator := NewCardGenerator(client, 0, nil)

	doc := domain.ProcessedDocument{
		Filename:   "biology.pdf",
		TotalPages: 2,
		Chunks: []domain.TextChunk{
			{Text: mitochondriaText, PageNumber: 1, SourceFile: "biology.pdf", Type: domain.ChunkTypePDFContent},
			{Text: "", PageNumber: 2, SourceFile: "biology.pdf", Type: domain.ChunkTypePDFContent},
		},
	}

	result := generator.GenerateForDocument(context.Background(), doc, Options{
		Mode:            ModeTwoStep,
		MaxConcepts:     6,
		DifficultyLevel: 2,
	})

	require.Len(t, result.Cards, 1)
	assert.Equal(t, "What is the powerhouse of the cell?", result.Cards[0].Question)
	assert.Equal(t, "The mitochondria.", result.Cards[0].Answer)
	assert.Equal(t, 2, result.Cards[0].Level)
	assert.Empty(t, result.Degraded)

	// The empty chunk must not trigger any LLM round-trip: two calls total
	// (plan + synthesize) for chunk 1 only.
	assert.Equal(t, 2, client.calls)
}

func TestGenerateForDocumentIsIdempotent(t *testing.T) {
	t.Parallel()

	doc := domain.ProcessedDocument{
		Filename:   "biology.pdf",
		TotalPages: 1,
		Chunks: []domain.TextChunk{
			{Text: mitochondriaText, PageNumber: 1},
		},
	}

	var runs [][]domain.GeneratedFlashcard
	for i := 0; i < 3; i++ {
		client := &keyedClient{responses: map[string][2]string{
			mitochondriaText: mitochondriaResponses(),
		}}
		generator := NewCardGenerator(client, 0, nil)
		result := generator.GenerateForDocument(context.Background(), doc, Options{MaxConcepts: 6})
		runs = append(runs, result.Cards)
	}

	assert.Equal(t, runs[0], runs[1])
	assert.Equal(t, runs[1], runs[2])
}

func TestGenerateForDocumentPreservesChunkOrder(t *testing.T) {
	t.Parallel()

	pageOne := "Photosynthesis converts light into chemical energy."
	pageTwo := "Osmosis moves water across a membrane."

	responses := map[string][2]string{
		pageOne: {
			`{"concepts": [{"id": "p1", "concept": "Photosynthesis", "question": "Q1?", "evidence": "light into chemical energy", "confidence": 0.9, "should_generate": true}]}`,
			`{"results": [{"concept_id": "p1", "status": "ok", "question": "Q1?", "answer": "A1."}]}`,
		},
		pageTwo: {
			`{"concepts": [{"id": "p2", "concept": "Osmosis", "question": "Q2?", "evidence": "water across a membrane", "confidence": 0.9, "should_generate": true}]}`,
			`{"results": [{"concept_id": "p2", "status": "ok", "question": "Q2?", "answer": "A2."}]}`,
		},
	}

	forward := domain.ProcessedDocument{Chunks: []domain.TextChunk{
		{Text: pageOne, PageNumber: 1},
		{Text: pageTwo, PageNumber: 2},
	}}
	reversed := domain.ProcessedDocument{Chunks: []domain.TextChunk{
		{Text: pageTwo, PageNumber: 2},
		{Text: pageOne, PageNumber: 1},
	}}

	generatorA := NewCardGenerator(&keyedClient{responses: responses}, 0, nil)
	resultA := generatorA.GenerateForDocument(context.Background(), forward, Options{MaxConcepts: 6})

	generatorB := NewCardGenerator(&keyedClient{responses: responses}, 0, nil)
	resultB := generatorB.GenerateForDocument(context.Background(), reversed, Options{MaxConcepts: 6})

	require.Len(t, resultA.Cards, 2)
	require.Len(t, resultB.Cards, 2)

	// Concatenation order follows chunk order.
	assert.Equal(t, "Q1?", resultA.Cards[0].Question)
	assert.Equal(t, "Q2?", resultA.Cards[1].Question)
	assert.Equal(t, "Q2?", resultB.Cards[0].Question)
	assert.Equal(t, "Q1?", resultB.Cards[1].Question)

	// Shuffling chunk order changes only output order, not content.
	assert.ElementsMatch(t, resultA.Cards, resultB.Cards)
}

func TestGenerateForDocumentDegradesToEmpty(t *testing.T) {
	t.Parallel()

	transportErr := errors.New("dial tcp 127.0.0.1:1234: connection refused")
	client := &scriptedClient{err: transportErr}
	generator := NewCardGenerator(client, 0, nil)

	doc := domain.ProcessedDocument{
		Filename: "notes.pdf",
		Chunks: []domain.TextChunk{
			{Text: "some content", PageNumber: 1},
		},
	}

	result := generator.GenerateForDocument(context.Background(), doc, Options{MaxConcepts: 6})

	assert.Empty(t, result.Cards, "a transport failure yields zero cards, not an error")
	require.Len(t, result.Degraded, 1)
	assert.Equal(t, 1, result.Degraded[0].PageNumber)
	assert.Equal(t, "plan", result.Degraded[0].Stage)
	assert.ErrorIs(t, result.Degraded[0].Err, transportErr)
}

func TestGenerateForDocumentSkipsSynthesisWithoutConcepts(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{responses: []string{`{"concepts": []}`}}
	generator := NewCardGenerator(client, 0, nil)

	doc := domain.ProcessedDocument{Chunks: []domain.TextChunk{{Text: "content", PageNumber: 1}}}
	result := generator.GenerateForDocument(context.Background(), doc, Options{MaxConcepts: 6})

	assert.Empty(t, result.Cards)
	assert.Empty(t, result.Degraded)
	assert.Len(t, client.prompts, 1, "no synthesis call when planning accepts nothing")
}

func TestGenerateForDocumentDirectMode(t *testing.T) {
	t.Parallel()

	client := &scriptedClient{responses: []string{
		`{"flashcards": [{"question": "Q?", "answer": "A."}]}`,
	}}
	generator := NewCardGenerator(client, 0, nil)

	doc := domain.ProcessedDocument{Chunks: []domain.TextChunk{{Text: "content", PageNumber: 1}}}
	result := generator.GenerateForDocument(context.Background(), doc, Options{
		Mode:            ModeDirect,
		CardsPerChunk:   1,
		DifficultyLevel: 3,
	})

	require.Len(t, result.Cards, 1)
	assert.Equal(t, 3, result.Cards[0].Level)
	assert.Len(t, client.prompts, 1, "direct mode issues a single call per chunk")
}

func TestGenerateForText(t *testing.T) {
	t.Parallel()

	t.Run("blank text yields nothing without an LLM call", func(t *testing.T) {
		t.Parallel()

		client := &scriptedClient{}
		generator := NewCardGenerator(client, 0, nil)

		cards, err := generator.GenerateForText(context.Background(), "   \n\t", Options{MaxConcepts: 6})
		require.NoError(t, err)
		assert.Empty(t, cards)
		assert.Empty(t, client.prompts)
	})

	t.Run("runs the pipeline on non-blank text", func(t *testing.T) {
		t.Parallel()

		pair := mitochondriaResponses()
		client := &scriptedClient{responses: []string{pair[0], pair[1]}}
		generator := NewCardGenerator(client, 0, nil)

		cards, err := generator.GenerateForText(context.Background(), mitochondriaText, Options{MaxConcepts: 6, DifficultyLevel: 1})
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, 1, cards[0].Level)
	})
}
