package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/api/shared"
	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/platform/llm"
	"github.com/avollmer/studydeck/internal/service"
	"github.com/avollmer/studydeck/internal/storage"
	"github.com/avollmer/studydeck/internal/store"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// files spill to temp files.
const maxUploadMemory = 32 << 20

// Uploader is the slice of the upload service the file handler needs.
type Uploader interface {
	Upload(ctx context.Context, req service.UploadRequest, files []service.UploadedFile) ([]service.FileResult, error)
	DeleteFile(ctx context.Context, projectID, fileID uuid.UUID) error
}

// FileHandler handles file upload, listing, serving, and extraction
// requests.
type FileHandler struct {
	files    store.FileStore
	uploader Uploader
	storage  *storage.Storage
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files store.FileStore, uploader Uploader, st *storage.Storage) *FileHandler {
	return &FileHandler{files: files, uploader: uploader, storage: st}
}

// Upload handles POST /api/projects/{projectID}/files requests: multipart
// upload with generation knobs in the query string. All knobs are validated
// before any file is processed.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	provider, err := llm.ParseProvider(r.URL.Query().Get("provider"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	category, err := service.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	difficulty, err := parseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No files provided")
		return
	}

	uploads := make([]service.UploadedFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Unreadable file in upload")
			return
		}
		defer func() { _ = f.Close() }()

		uploads = append(uploads, service.UploadedFile{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  f,
		})
	}

	results, err := h.uploader.Upload(r.Context(), service.UploadRequest{
		ProjectID:    projectID,
		Provider:     provider,
		OpenAIAPIKey: r.URL.Query().Get("openai_api_key"),
		Category:     category,
		Difficulty:   difficulty,
	}, uploads)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := make([]UploadResultResponse, 0, len(results))
	for _, result := range results {
		response = append(response, uploadResultToResponse(result))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// List handles GET /api/projects/{projectID}/files requests.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	files, err := h.files.ListByProject(r.Context(), projectID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := make([]FileResponse, 0, len(files))
	for _, f := range files {
		response = append(response, fileToResponse(f))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Delete handles DELETE /api/projects/{projectID}/files/{fileID} requests.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}
	fileID, ok := parseUUIDParam(w, r, "fileID")
	if !ok {
		return
	}

	if err := h.uploader.DeleteFile(r.Context(), projectID, fileID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "success"})
}

// ServeRaw handles GET /api/files/{fileID} requests, serving the stored
// bytes inline so browsers render PDFs and images instead of downloading
// them.
func (h *FileHandler) ServeRaw(w http.ResponseWriter, r *http.Request) {
	fileID, ok := parseUUIDParam(w, r, "fileID")
	if !ok {
		return
	}

	file, err := h.files.GetByID(r.Context(), fileID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.OriginalFilename))
	http.ServeFile(w, r, file.StoredPath)
}

// Extracted handles GET /api/files/{fileID}/extracted?format=json|md
// requests, returning the stored extraction artifact.
func (h *FileHandler) Extracted(w http.ResponseWriter, r *http.Request) {
	fileID, ok := parseUUIDParam(w, r, "fileID")
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = storage.FormatJSON
	}

	data, err := h.storage.ReadArtifact(fileID, format)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	contentType := "application/json"
	if format == storage.FormatMarkdown {
		contentType = "text/markdown; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// parseDifficulty parses the optional difficulty query param and enforces
// the card level range. Absent means the easiest level.
func parseDifficulty(raw string) (int, error) {
	if raw == "" {
		return domain.MinLevel, nil
	}
	difficulty, err := strconv.Atoi(raw)
	if err != nil || difficulty < domain.MinLevel || difficulty > domain.MaxLevel {
		return 0, fmt.Errorf("%w: difficulty must be between %d and %d",
			domain.ErrInvalidLevel, domain.MinLevel, domain.MaxLevel)
	}
	return difficulty, nil
}
