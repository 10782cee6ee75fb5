package api

import (
	"net/http"

	"github.com/avollmer/studydeck/internal/api/shared"
	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/store"
)

// CreateFlashcardRequest is the request body for creating a flashcard by
// hand.
type CreateFlashcardRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	Answer   string `json:"answer"   validate:"required,min=1"`
	Level    *int   `json:"level"    validate:"omitempty,gte=0,lte=3"`
}

// UpdateFlashcardRequest is the request body for a partial flashcard
// update. Absent fields keep their stored values.
type UpdateFlashcardRequest struct {
	Question    *string `json:"question" validate:"omitempty,min=1"`
	Answer      *string `json:"answer" validate:"omitempty,min=1"`
	Level       *int    `json:"level" validate:"omitempty,gte=0,lte=3"`
	Important   *int    `json:"important" validate:"omitempty,gte=0"`
	ReviewCount *int    `json:"review_count" validate:"omitempty,gte=0"`
}

// UpdateLevelRequest is the request body for the review endpoint. When
// ReviewCount is absent the stored count is incremented by one.
type UpdateLevelRequest struct {
	Level       *int `json:"level" validate:"omitempty,gte=0,lte=3"`
	ReviewCount *int `json:"review_count" validate:"omitempty,gte=0"`
}

// FlashcardHandler handles flashcard-related HTTP requests.
type FlashcardHandler struct {
	projects store.ProjectStore
	cards    store.FlashcardStore
}

// NewFlashcardHandler creates a new FlashcardHandler.
func NewFlashcardHandler(projects store.ProjectStore, cards store.FlashcardStore) *FlashcardHandler {
	return &FlashcardHandler{projects: projects, cards: cards}
}

// List handles GET /api/projects/{projectID}/flashcards requests.
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	if _, err := h.projects.GetByID(r.Context(), projectID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	cards, err := h.cards.ListByProject(r.Context(), projectID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	response := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, flashcardToResponse(card))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Create handles POST /api/projects/{projectID}/flashcards requests.
func (h *FlashcardHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return
	}

	var req CreateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if _, err := h.projects.GetByID(r.Context(), projectID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	level := domain.MinLevel
	if req.Level != nil {
		level = *req.Level
	}

	card, err := domain.NewFlashcard(projectID, req.Question, req.Answer, level)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if err := h.cards.Create(r.Context(), card); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, flashcardToResponse(card))
}

// Update handles PATCH /api/projects/{projectID}/flashcards/{cardID}
// requests.
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	card, ok := h.loadProjectCard(w, r)
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if req.Question != nil {
		card.Question = *req.Question
	}
	if req.Answer != nil {
		card.Answer = *req.Answer
	}
	if req.Level != nil {
		card.Level = *req.Level
	}
	if req.Important != nil {
		card.Important = *req.Important
	}
	if req.ReviewCount != nil {
		card.ReviewCount = *req.ReviewCount
	}

	if err := h.cards.Update(r.Context(), card); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// Delete handles DELETE /api/projects/{projectID}/flashcards/{cardID}
// requests.
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	card, ok := h.loadProjectCard(w, r)
	if !ok {
		return
	}

	if err := h.cards.Delete(r.Context(), card.ID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "success"})
}

// UpdateLevel handles POST .../flashcards/{cardID}/level requests: it sets
// the card's level and bumps the review count unless the payload pins one.
func (h *FlashcardHandler) UpdateLevel(w http.ResponseWriter, r *http.Request) {
	card, ok := h.loadProjectCard(w, r)
	if !ok {
		return
	}

	var req UpdateLevelRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	level := card.Level
	if req.Level != nil {
		level = *req.Level
	}
	if err := card.SetLevel(level, req.ReviewCount); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.cards.Update(r.Context(), card); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// loadProjectCard fetches the card addressed by the URL and verifies it
// belongs to the addressed project. Cross-project access reads as not
// found.
func (h *FlashcardHandler) loadProjectCard(w http.ResponseWriter, r *http.Request) (*domain.Flashcard, bool) {
	projectID, ok := parseUUIDParam(w, r, "projectID")
	if !ok {
		return nil, false
	}
	cardID, ok := parseUUIDParam(w, r, "cardID")
	if !ok {
		return nil, false
	}

	card, err := h.cards.GetByID(r.Context(), cardID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return nil, false
	}
	if card.ProjectID != projectID {
		RespondWithMappedError(w, r, store.ErrFlashcardNotFound)
		return nil, false
	}
	return card, true
}
