package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avollmer/studydeck/internal/api/shared"
	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/store"
)

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateProjectRequest is the request body for a partial project update.
// Absent fields keep their stored values.
type UpdateProjectRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// ProjectHandler handles project-related HTTP requests.
type ProjectHandler struct {
	projects store.ProjectStore
	cards    store.FlashcardStore
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects store.ProjectStore, cards store.FlashcardStore) *ProjectHandler {
	return &ProjectHandler{projects: projects, cards: cards}
}

// List handles GET /api/projects requests.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, projectWithCountToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Create handles POST /api/projects requests.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	project, err := domain.NewProject(req.Title, req.Description)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if err := h.projects.Create(r.Context(), project); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, projectToResponse(project, 0))
}

// Get handles GET /api/projects/{projectID} requests.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	project, err := h.projects.GetByID(r.Context(), projectID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	count, err := h.cards.CountByProject(r.Context(), projectID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectToResponse(project, count))
}

// Update handles PATCH /api/projects/{projectID} requests.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	project, err := h.projects.GetByID(r.Context(), projectID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if req.Title != nil {
		description := project.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := project.Rename(*req.Title, description); err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
	} else if req.Description != nil {
		project.Description = *req.Description
		project.UpdatedAt = time.Now().UTC()
	}

	if err := h.projects.Update(r.Context(), project); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	count, err := h.cards.CountByProject(r.Context(), projectID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projectToResponse(project, count))
}

// Delete handles DELETE /api/projects/{projectID} requests.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	if err := h.projects.Delete(r.Context(), projectID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "success"})
}

// parseUUIDParam extracts and parses a UUID URL parameter, writing a 400
// response on failure.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
