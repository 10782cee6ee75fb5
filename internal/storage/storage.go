// Package storage persists uploaded file bytes and extraction artifacts on
// the local filesystem. Database rows hold metadata; this package owns the
// paths.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/domain"
)

// Artifact formats served by the extracted-text endpoint.
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
)

// ErrUnknownFormat indicates a requested artifact format that is neither
// json nor md.
var ErrUnknownFormat = errors.New("unknown artifact format")

// ErrArtifactNotFound indicates no extraction artifact exists for the file.
var ErrArtifactNotFound = errors.New("extraction artifact not found")

// Storage writes uploads and extraction artifacts under two configured
// directories. The directories are created at construction.
type Storage struct {
	uploadDir    string
	extractedDir string
	logger       *slog.Logger
}

// New creates a Storage rooted at the given directories, creating them if
// needed. If logger is nil, the default logger is used.
func New(uploadDir, extractedDir string, logger *slog.Logger) (*Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}

	for _, dir := range []string{uploadDir, extractedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
		}
	}

	return &Storage{
		uploadDir:    uploadDir,
		extractedDir: extractedDir,
		logger:       logger.With(slog.String("component", "storage")),
	}, nil
}

// SaveUpload streams an uploaded file to disk and returns its stored path
// and size. The stored name is prefixed with the project ID so uploads with
// the same filename in different projects cannot collide.
func (s *Storage) SaveUpload(projectID uuid.UUID, filename string, r io.Reader) (string, int64, error) {
	// Strip any client-supplied directory components.
	safeName := fmt.Sprintf("%s_%s", projectID, filepath.Base(filename))
	path := filepath.Join(s.uploadDir, safeName)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create upload file: %w", err)
	}

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to write upload file: %w", err)
	}

	return path, size, nil
}

// RemoveUpload deletes a stored upload. A missing file is not an error:
// the row is the source of truth and the bytes may already be gone.
func (s *Storage) RemoveUpload(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// WriteArtifacts persists the extraction result for a file as both JSON
// (structured, for the API) and Markdown (flat, for LLM consumption).
func (s *Storage) WriteArtifacts(fileID uuid.UUID, doc domain.ProcessedDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal extraction result: %w", err)
	}
	if err := os.WriteFile(s.artifactPath(fileID, FormatJSON), data, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON artifact: %w", err)
	}

	if err := os.WriteFile(s.artifactPath(fileID, FormatMarkdown), []byte(renderMarkdown(doc)), 0o644); err != nil {
		return fmt.Errorf("failed to write Markdown artifact: %w", err)
	}

	return nil
}

// ReadArtifact returns the stored extraction artifact in the requested
// format. Returns ErrUnknownFormat for formats other than json/md and
// ErrArtifactNotFound when the file was never processed.
func (s *Storage) ReadArtifact(fileID uuid.UUID, format string) ([]byte, error) {
	if format != FormatJSON && format != FormatMarkdown {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	data, err := os.ReadFile(s.artifactPath(fileID, format))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

// RemoveArtifacts deletes both artifact forms for a file. Missing artifacts
// are ignored.
func (s *Storage) RemoveArtifacts(fileID uuid.UUID) error {
	for _, format := range []string{FormatJSON, FormatMarkdown} {
		if err := os.Remove(s.artifactPath(fileID, format)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove artifact: %w", err)
		}
	}
	return nil
}

func (s *Storage) artifactPath(fileID uuid.UUID, format string) string {
	return filepath.Join(s.extractedDir, fmt.Sprintf("%s.%s", fileID, format))
}

// renderMarkdown flattens an extraction result into one Markdown document,
// one section per page.
func renderMarkdown(doc domain.ProcessedDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", doc.Filename)
	fmt.Fprintf(&b, "**Total Pages:** %d\n\n", doc.TotalPages)
	for _, chunk := range doc.Chunks {
		fmt.Fprintf(&b, "## Page %d\n\n%s\n\n---\n\n", chunk.PageNumber, chunk.Text)
	}
	return b.String()
}
