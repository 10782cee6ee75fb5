// Package mupdf implements text extraction on top of the MuPDF engine via
// go-fitz. PDF pages are read from the text layer first; pages without one
// are rendered and handed to an OCR engine when configured. Single raster
// images take the OCR path directly.
package mupdf

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/extractor"
)

// Extractor extracts page-level text chunks from PDFs and images. It is
// safe for concurrent use; each call opens its own document handle.
type Extractor struct {
	ocr    extractor.OCREngine
	logger *slog.Logger
}

var _ extractor.Extractor = (*Extractor)(nil)

// NewExtractor creates an Extractor. ocr may be nil, in which case pages
// without a text layer and raster images yield no chunks. If logger is nil,
// the default logger is used.
func NewExtractor(ocr extractor.OCREngine, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		ocr:    ocr,
		logger: logger.With(slog.String("component", "mupdf_extractor")),
	}
}

// Process extracts text chunks from the file at path. The strategy is
// chosen by the original filename's extension; unsupported extensions
// return extractor.ErrUnsupportedType.
func (e *Extractor) Process(ctx context.Context, path, filename string) (domain.ProcessedDocument, error) {
	switch {
	case extractor.IsPDF(filename):
		return e.processPDF(ctx, path, filename)
	case extractor.IsImage(filename):
		return e.processImage(ctx, path, filename)
	default:
		return domain.ProcessedDocument{}, fmt.Errorf("%w: %q", extractor.ErrUnsupportedType, filepath.Ext(filename))
	}
}

func (e *Extractor) processPDF(ctx context.Context, path, filename string) (domain.ProcessedDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return domain.ProcessedDocument{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = doc.Close() }()

	totalPages := doc.NumPage()
	result := domain.ProcessedDocument{
		Filename:   filename,
		TotalPages: totalPages,
	}

	for page := 0; page < totalPages; page++ {
		if err := ctx.Err(); err != nil {
			return domain.ProcessedDocument{}, err
		}

		text, err := doc.Text(page)
		if err != nil {
			e.logger.WarnContext(ctx, "failed to read page text layer",
				slog.String("filename", filename),
				slog.Int("page", page+1),
				slog.String("error", err.Error()))
			continue
		}

		if strings.TrimSpace(text) == "" {
			text = e.recognizePage(ctx, doc, page, filename)
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		result.Chunks = append(result.Chunks, domain.TextChunk{
			Text:       text,
			PageNumber: page + 1,
			SourceFile: filename,
			Type:       domain.ChunkTypePDFContent,
		})
	}

	e.logger.DebugContext(ctx, "extracted PDF",
		slog.String("filename", filename),
		slog.Int("total_pages", totalPages),
		slog.Int("chunks", len(result.Chunks)))

	return result, nil
}

// recognizePage renders a page and runs OCR on it. Rendering or recognition
// failures degrade to an empty string so extraction continues elsewhere.
func (e *Extractor) recognizePage(ctx context.Context, doc *fitz.Document, page int, filename string) string {
	if e.ocr == nil {
		return ""
	}

	img, err := doc.Image(page)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to render page for OCR",
			slog.String("filename", filename),
			slog.Int("page", page+1),
			slog.String("error", err.Error()))
		return ""
	}

	text, err := e.ocr.Recognize(ctx, img)
	if err != nil {
		e.logger.WarnContext(ctx, "OCR failed on rendered page",
			slog.String("filename", filename),
			slog.Int("page", page+1),
			slog.String("error", err.Error()))
		return ""
	}
	return text
}

// processImage runs a single raster image through OCR. Failures degrade to
// a chunkless document rather than erroring, so one bad scan cannot sink a
// multi-file upload.
func (e *Extractor) processImage(ctx context.Context, path, filename string) (domain.ProcessedDocument, error) {
	result := domain.ProcessedDocument{
		Filename:   filename,
		TotalPages: 1,
	}

	if e.ocr == nil {
		e.logger.DebugContext(ctx, "no OCR engine configured, skipping image",
			slog.String("filename", filename))
		return result, nil
	}

	doc, err := fitz.New(path)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to open image",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return result, nil
	}
	defer func() { _ = doc.Close() }()

	img, err := doc.Image(0)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to decode image",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return result, nil
	}

	text, err := e.ocr.Recognize(ctx, img)
	if err != nil {
		e.logger.WarnContext(ctx, "OCR failed on image",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
		return result, nil
	}

	text = strings.TrimSpace(text)
	if text != "" {
		result.Chunks = append(result.Chunks, domain.TextChunk{
			Text:       text,
			PageNumber: 1,
			SourceFile: filename,
			Type:       domain.ChunkTypeImageOCR,
		})
	}

	return result, nil
}
