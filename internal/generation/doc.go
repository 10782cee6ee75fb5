// Package generation implements the two-step flashcard generation pipeline:
// a planning call that proposes evidence-backed concepts from a chunk of
// source text, and a synthesis call that turns accepted concepts into
// question/answer pairs. It also carries the legacy single-shot "direct"
// mode. The package abstracts the LLM backend behind the Client interface,
// allowing the application to generate flashcards without coupling to a
// specific provider.
package generation
