package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

// Prompt templates are versioned constants rather than inline string
// construction so their content can be golden-tested independently of the
// calling code.

// planningPromptTemplate asks the model to propose flashcard concepts with
// evidence and confidence, emitting exactly one JSON object.
const planningPromptTemplate = `You are a flashcard planner.

Task: select up to {{.MaxConcepts}} flashcard concepts from the slide text.

Only select a concept if the slide contains enough explicit information
to answer a factual question WITHOUT meta-statements.

For each concept, provide:
- id (short unique string)
- concept (short label)
- question (candidate flashcard question)
- evidence (exact words from the slide, 5-25 words)
- confidence (float between 0.0 and 1.0)
- should_generate (true or false)

STRICT RULES:
- Use ONLY the slide text (no external knowledge).
- No speculation.
- If a concept is only mentioned (name/title without explanation),
  set should_generate=false.
- Keep the output language the same as the slide language.

Reject (should_generate=false) if the content is:
- personal opinion/interview ("I", "me", "my")
- unclear/vague ("this role", "that", "the person at the time")
- only a name/title without explanation
- a question about the author name or the date of publication.

Return ONLY valid JSON in this shape:
{
  "concepts": [
    {
      "id": "c1",
      "concept": "...",
      "question": "...",
      "evidence": "...",
      "confidence": 0.0,
      "should_generate": true
    }
  ]
}

Slide text:
{{.Text}}

JSON:`

// synthesisPromptTemplate turns planned concepts into exactly one verdict
// per concept, either an "ok" question/answer pair or a "skipped" marker.
const synthesisPromptTemplate = `You are an expert educational flashcard writer.

Use ONLY the slide text for correctness.
Write in the SAME language as the slide text.

For each concept, output exactly ONE result object:
- status = "ok" with a question and answer
- OR status = "skipped" with reason = "insufficient_evidence"

Never write meta-statements such as:
- "the text does not provide details"
- "no information is given"
- "probably", "likely", "appears to be"

Difficulty: {{.Difficulty}}

Return ONLY valid JSON in this exact shape:
{
  "results": [
    {
      "concept_id": "...",
      "status": "ok",
      "question": "...",
      "answer": "..."
    },
    {
      "concept_id": "...",
      "status": "skipped",
      "reason": "insufficient_evidence"
    }
  ]
}

Slide text:
{{.Text}}

Concepts:
{{.ConceptsJSON}}

JSON:`

// directPromptTemplate is the legacy single-shot prompt: ask the model for
// exactly N flashcards without a planning pass.
const directPromptTemplate = `You are an expert at creating educational flashcards.

Based on the following text, create exactly {{.NumCards}} flashcards with {{.Difficulty}} questions and answers.

TEXT:
{{.Text}}

Generate the flashcards in the following JSON format:
{
  "flashcards": [
    {"question": "...", "answer": "..."},
    {"question": "...", "answer": "..."}
  ]
}

Requirements:
- Each question should be clear and concise
- Each answer should be informative but not too long (1-3 sentences)
- Questions should test understanding of the material
- Ensure variety in question types
- Return only valid JSON, no additional text
- You MUST generate all output in the SAME language as the majority of the input slide text.
- CRITICAL: Do NOT translate, switch language, or mix languages.
- If the slide does not contain enough explicit information to answer a precise flashcard, DO NOT generate a flashcard.
- Do NOT write vague answers such as "the text does not provide details".
- Don't ask questions about the date of publication, or author names.
- In the answers, you MUST NOT write meta-statements such as:
  "the text does not provide details"
  "no specific information is given"
  "probably", "likely", "appears to be"

JSON Output:`

var (
	planningTmpl  = template.Must(template.New("planning").Parse(planningPromptTemplate))
	synthesisTmpl = template.Must(template.New("synthesis").Parse(synthesisPromptTemplate))
	directTmpl    = template.Must(template.New("direct").Parse(directPromptTemplate))
)

// difficultyDescriptions maps the 0-3 level to the phrasing embedded in the
// prompts. Unrecognized levels fall back to medium.
var difficultyDescriptions = map[int]string{
	0: "easy (basic facts and definitions)",
	1: "medium (conceptual understanding)",
	2: "hard (application and analysis)",
	3: "expert (synthesis and evaluation)",
}

// describeDifficulty returns the natural-language descriptor for a level.
func describeDifficulty(level int) string {
	if desc, ok := difficultyDescriptions[level]; ok {
		return desc
	}
	return "medium"
}

type planningPromptData struct {
	MaxConcepts int
	Text        string
}

type synthesisPromptData struct {
	Difficulty   string
	Text         string
	ConceptsJSON string
}

type directPromptData struct {
	NumCards   int
	Difficulty string
	Text       string
}

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %q: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
