package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The prompt templates are part of the model contract: the parsers depend on
// the JSON shapes they demand. These tests pin the load-bearing lines.

func TestPlanningPromptContract(t *testing.T) {
	t.Parallel()

	prompt, err := renderPrompt(planningTmpl, planningPromptData{MaxConcepts: 6, Text: "SLIDE"})
	require.NoError(t, err)

	for _, want := range []string{
		"select up to 6 flashcard concepts",
		"should_generate",
		"confidence (float between 0.0 and 1.0)",
		"evidence (exact words from the slide, 5-25 words)",
		"Use ONLY the slide text (no external knowledge).",
		"Keep the output language the same as the slide language.",
		`"concepts": [`,
		"Return ONLY valid JSON",
		"SLIDE",
	} {
		assert.Contains(t, prompt, want)
	}

	// Rejection rules for opinions, vagueness, bare names, and meta questions.
	assert.Contains(t, prompt, "personal opinion/interview")
	assert.Contains(t, prompt, "unclear/vague")
	assert.Contains(t, prompt, "only a name/title without explanation")
	assert.Contains(t, prompt, "author name or the date of publication")
}

func TestSynthesisPromptContract(t *testing.T) {
	t.Parallel()

	prompt, err := renderPrompt(synthesisTmpl, synthesisPromptData{
		Difficulty:   "medium (conceptual understanding)",
		Text:         "SLIDE",
		ConceptsJSON: `[{"id":"c1"}]`,
	})
	require.NoError(t, err)

	for _, want := range []string{
		`status = "ok" with a question and answer`,
		`status = "skipped" with reason = "insufficient_evidence"`,
		"Difficulty: medium (conceptual understanding)",
		`"results": [`,
		`"concept_id"`,
		"exactly ONE result object",
		"Write in the SAME language as the slide text.",
		`[{"id":"c1"}]`,
		"SLIDE",
	} {
		assert.Contains(t, prompt, want)
	}

	// Anti-hedging constraints.
	assert.Contains(t, prompt, "Never write meta-statements")
	assert.Contains(t, prompt, `"probably", "likely", "appears to be"`)
}

func TestDirectPromptContract(t *testing.T) {
	t.Parallel()

	prompt, err := renderPrompt(directTmpl, directPromptData{
		NumCards:   5,
		Difficulty: "easy (basic facts and definitions)",
		Text:       "SLIDE",
	})
	require.NoError(t, err)

	for _, want := range []string{
		"create exactly 5 flashcards",
		"easy (basic facts and definitions)",
		`"flashcards": [`,
		"Return only valid JSON, no additional text",
		"Do NOT translate, switch language, or mix languages",
		"SLIDE",
	} {
		assert.Contains(t, prompt, want)
	}

	assert.False(t, strings.Contains(prompt, "{{"), "unexpanded template actions must not leak into prompts")
}
