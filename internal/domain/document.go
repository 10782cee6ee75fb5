package domain

import "strings"

// Chunk type tags recorded on extracted text chunks.
const (
	ChunkTypePDFContent = "pdf_content"
	ChunkTypeImageOCR   = "image_ocr"
)

// TextChunk is one page (or one image) worth of extracted text. It is the
// unit of independent flashcard generation: chunks are never combined.
type TextChunk struct {
	Text       string `json:"text"`
	PageNumber int    `json:"page_number"`
	SourceFile string `json:"source_file"`
	Type       string `json:"type"`
}

// Empty reports whether the chunk contains no usable text.
func (c TextChunk) Empty() bool {
	return strings.TrimSpace(c.Text) == ""
}

// ProcessedDocument is the full extraction result for one uploaded file,
// with chunks in page order. It is created once by the extractor and not
// mutated afterward.
type ProcessedDocument struct {
	Filename   string      `json:"filename"`
	TotalPages int         `json:"total_pages"`
	Chunks     []TextChunk `json:"chunks"`
}
