// Package domain defines the core business entities of the application:
// projects, uploaded files, flashcards, and the intermediate values produced
// by the flashcard generation pipeline (text chunks, planned concepts,
// verdicts, and generated cards).
package domain
