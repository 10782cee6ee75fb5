package api

import (
	"time"

	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/service"
	"github.com/avollmer/studydeck/internal/store"
)

// ProjectResponse represents a project in API responses, including its live
// flashcard count.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FileResponse represents stored file metadata in API responses. The path
// on disk is deliberately absent.
type FileResponse struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	MimeType         string    `json:"mime_type"`
	Size             int64     `json:"size"`
	CreatedAt        time.Time `json:"created_at"`
}

// FlashcardResponse represents a flashcard in API responses.
type FlashcardResponse struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Level       int       `json:"level"`
	Important   int       `json:"important"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UploadResultResponse reports the outcome of one processed file of an
// upload.
type UploadResultResponse struct {
	File           FileResponse             `json:"file"`
	Processed      domain.ProcessedDocument `json:"processed"`
	CardsGenerated int                      `json:"cards_generated"`
	DegradedChunks int                      `json:"degraded_chunks,omitempty"`
}

func projectToResponse(p *domain.Project, cardCount int) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		CardCount:   cardCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func projectWithCountToResponse(p store.ProjectWithCount) ProjectResponse {
	return projectToResponse(&p.Project, p.CardCount)
}

func fileToResponse(f *domain.File) FileResponse {
	return FileResponse{
		ID:               f.ID.String(),
		OriginalFilename: f.OriginalFilename,
		MimeType:         f.MimeType,
		Size:             f.Size,
		CreatedAt:        f.CreatedAt,
	}
}

func flashcardToResponse(c *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:          c.ID.String(),
		Question:    c.Question,
		Answer:      c.Answer,
		Level:       c.Level,
		Important:   c.Important,
		ReviewCount: c.ReviewCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func uploadResultToResponse(result service.FileResult) UploadResultResponse {
	return UploadResultResponse{
		File:           fileToResponse(result.File),
		Processed:      result.Processed,
		CardsGenerated: result.CardsGenerated,
		DegradedChunks: result.DegradedChunks,
	}
}
