// Package extractor defines the text-extraction boundary between uploaded
// files and the generation pipeline. Implementations turn a stored file
// into a domain.ProcessedDocument of page-level text chunks.
package extractor

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"strings"

	"github.com/avollmer/studydeck/internal/domain"
)

// ErrUnsupportedType indicates a file whose extension maps to no known
// extraction strategy. Callers should reject the upload before storing it.
var ErrUnsupportedType = errors.New("unsupported file type")

// Extractor extracts text chunks from a stored file. path is the location
// on disk; filename is the original upload name, used both to pick the
// extraction strategy and to label the resulting chunks.
type Extractor interface {
	Process(ctx context.Context, path, filename string) (domain.ProcessedDocument, error)
}

// OCREngine recognizes text in a rendered image. A nil engine is valid:
// pages or images with no machine-readable text then simply yield no chunks.
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// pdf vs. image is decided by extension, matching the upload filter.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SupportedExtension reports whether the filename's extension maps to an
// extraction strategy.
func SupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".pdf" || imageExtensions[ext]
}

// IsImage reports whether the filename names a raster image handled by the
// OCR path.
func IsImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsPDF reports whether the filename names a PDF.
func IsPDF(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}
