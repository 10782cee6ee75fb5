package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// File-specific validation errors. All wrap ErrValidation so callers can
// treat any of them as bad input.
var (
	// ErrFileIDEmpty is returned when a file ID is empty or nil.
	ErrFileIDEmpty = fmt.Errorf("%w: file ID cannot be empty", ErrValidation)

	// ErrFileProjectIDEmpty is returned when a file's project ID is empty or nil.
	ErrFileProjectIDEmpty = fmt.Errorf("%w: file project ID cannot be empty", ErrValidation)

	// ErrFileNameEmpty is returned when a file's original filename is empty.
	ErrFileNameEmpty = fmt.Errorf("%w: file name cannot be empty", ErrValidation)

	// ErrFilePathEmpty is returned when a file's stored path is empty.
	ErrFilePathEmpty = fmt.Errorf("%w: file stored path cannot be empty", ErrValidation)
)

// File records an uploaded document belonging to a project. The raw bytes
// live on the filesystem at StoredPath; the database row only carries
// metadata.
type File struct {
	ID               uuid.UUID `json:"id"`
	ProjectID        uuid.UUID `json:"project_id"`
	OriginalFilename string    `json:"original_filename"`
	StoredPath       string    `json:"-"`
	MimeType         string    `json:"mime_type,omitempty"`
	Size             int64     `json:"size"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewFile creates a new File record for an upload stored at storedPath.
// Returns an error if validation fails.
func NewFile(projectID uuid.UUID, originalFilename, storedPath, mimeType string, size int64) (*File, error) {
	file := &File{
		ID:               uuid.New(),
		ProjectID:        projectID,
		OriginalFilename: originalFilename,
		StoredPath:       storedPath,
		MimeType:         mimeType,
		Size:             size,
		CreatedAt:        time.Now().UTC(),
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return file, nil
}

// Validate checks if the File has valid data.
func (f *File) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFileIDEmpty
	}

	if f.ProjectID == uuid.Nil {
		return ErrFileProjectIDEmpty
	}

	if f.OriginalFilename == "" {
		return ErrFileNameEmpty
	}

	if f.StoredPath == "" {
		return ErrFilePathEmpty
	}

	return nil
}
