package domain

import "strings"

// Verdict status values emitted by the card synthesizer.
const (
	VerdictOK      = "ok"
	VerdictSkipped = "skipped"
)

// PlannedConcept is a candidate flashcard concept proposed by the planner,
// with a verbatim evidence excerpt from the source text and the model's own
// confidence in it. IDs are scoped to a single planning call and must never
// cross chunks.
type PlannedConcept struct {
	ID             string  `json:"id"`
	Concept        string  `json:"concept"`
	Question       string  `json:"question"`
	Evidence       string  `json:"evidence"`
	Confidence     float64 `json:"confidence"`
	ShouldGenerate bool    `json:"should_generate"`
}

// CardVerdict is the synthesizer's accept/skip decision for one planned
// concept. It is an intermediate value and never persisted on its own.
type CardVerdict struct {
	ConceptID string `json:"concept_id"`
	Status    string `json:"status"`
	Question  string `json:"question,omitempty"`
	Answer    string `json:"answer,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// GeneratedFlashcard is the only artifact that survives generation; the
// caller turns it into a persisted Flashcard record.
type GeneratedFlashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Level    int    `json:"level"`
}

// Valid reports whether the generated card carries a usable question and
// answer after trimming whitespace.
func (g GeneratedFlashcard) Valid() bool {
	return strings.TrimSpace(g.Question) != "" && strings.TrimSpace(g.Answer) != ""
}
