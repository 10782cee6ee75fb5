package api

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/avollmer/studydeck/internal/domain"
	"github.com/avollmer/studydeck/internal/service"
	"github.com/avollmer/studydeck/internal/store"
)

// In-memory store fakes shared by the handler tests.

type fakeProjectStore struct {
	projects map[uuid.UUID]*domain.Project
	listErr  error
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[uuid.UUID]*domain.Project{}}
}

func (f *fakeProjectStore) Create(_ context.Context, p *domain.Project) error {
	f.projects[p.ID] = p
	return nil
}

func (f *fakeProjectStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, store.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProjectStore) List(_ context.Context) ([]store.ProjectWithCount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []store.ProjectWithCount{}
	for _, p := range f.projects {
		out = append(out, store.ProjectWithCount{Project: *p})
	}
	return out, nil
}

func (f *fakeProjectStore) Update(_ context.Context, p *domain.Project) error {
	if _, ok := f.projects[p.ID]; !ok {
		return store.ErrProjectNotFound
	}
	clone := *p
	f.projects[p.ID] = &clone
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.projects[id]; !ok {
		return store.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectStore) WithTx(_ *sql.Tx) store.ProjectStore { return f }

type fakeFlashcardStore struct {
	cards map[uuid.UUID]*domain.Flashcard
}

func newFakeFlashcardStore() *fakeFlashcardStore {
	return &fakeFlashcardStore{cards: map[uuid.UUID]*domain.Flashcard{}}
}

func (f *fakeFlashcardStore) Create(_ context.Context, card *domain.Flashcard) error {
	f.cards[card.ID] = card
	return nil
}

func (f *fakeFlashcardStore) CreateBatch(_ context.Context, cards []*domain.Flashcard) error {
	for _, c := range cards {
		f.cards[c.ID] = c
	}
	return nil
}

func (f *fakeFlashcardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, store.ErrFlashcardNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeFlashcardStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Flashcard, error) {
	out := []*domain.Flashcard{}
	for _, c := range f.cards {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeFlashcardStore) CountByProject(_ context.Context, projectID uuid.UUID) (int, error) {
	count := 0
	for _, c := range f.cards {
		if c.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFlashcardStore) Update(_ context.Context, card *domain.Flashcard) error {
	if _, ok := f.cards[card.ID]; !ok {
		return store.ErrFlashcardNotFound
	}
	clone := *card
	f.cards[card.ID] = &clone
	return nil
}

func (f *fakeFlashcardStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.cards[id]; !ok {
		return store.ErrFlashcardNotFound
	}
	delete(f.cards, id)
	return nil
}

func (f *fakeFlashcardStore) WithTx(_ *sql.Tx) store.FlashcardStore { return f }

type fakeFileStore struct {
	files map[uuid.UUID]*domain.File
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[uuid.UUID]*domain.File{}}
}

func (f *fakeFileStore) Create(_ context.Context, file *domain.File) error {
	f.files[file.ID] = file
	return nil
}

func (f *fakeFileStore) GetByID(_ context.Context, id uuid.UUID) (*domain.File, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, store.ErrFileNotFound
	}
	return file, nil
}

func (f *fakeFileStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.File, error) {
	out := []*domain.File{}
	for _, file := range f.files {
		if file.ProjectID == projectID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeFileStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.files[id]; !ok {
		return store.ErrFileNotFound
	}
	delete(f.files, id)
	return nil
}

func (f *fakeFileStore) WithTx(_ *sql.Tx) store.FileStore { return f }

type fakeUploader struct {
	results    []service.FileResult
	err        error
	gotRequest service.UploadRequest
	gotUploads []service.UploadedFile
	deleteErr  error
	deleted    []uuid.UUID
}

func (f *fakeUploader) Upload(_ context.Context, req service.UploadRequest, uploads []service.UploadedFile) ([]service.FileResult, error) {
	f.gotRequest = req
	f.gotUploads = uploads
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeUploader) DeleteFile(_ context.Context, _, fileID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, fileID)
	return nil
}

// newTestProject seeds a project into the fake store.
func newTestProject(t *testing.T, projects *fakeProjectStore) *domain.Project {
	t.Helper()

	project, err := domain.NewProject("Biology", "cell basics")
	require.NoError(t, err)
	projects.projects[project.ID] = project
	return project
}

// newAPIRouter mounts handlers on the same route shapes the server uses.
func newAPIRouter(projectH *ProjectHandler, cardH *FlashcardHandler, fileH *FileHandler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		if projectH != nil {
			r.Get("/projects", projectH.List)
			r.Post("/projects", projectH.Create)
			r.Get("/projects/{projectID}", projectH.Get)
			r.Patch("/projects/{projectID}", projectH.Update)
			r.Delete("/projects/{projectID}", projectH.Delete)
		}
		if cardH != nil {
			r.Get("/projects/{projectID}/flashcards", cardH.List)
			r.Post("/projects/{projectID}/flashcards", cardH.Create)
			r.Patch("/projects/{projectID}/flashcards/{cardID}", cardH.Update)
			r.Delete("/projects/{projectID}/flashcards/{cardID}", cardH.Delete)
			r.Post("/projects/{projectID}/flashcards/{cardID}/level", cardH.UpdateLevel)
		}
		if fileH != nil {
			r.Post("/projects/{projectID}/files", fileH.Upload)
			r.Get("/projects/{projectID}/files", fileH.List)
			r.Delete("/projects/{projectID}/files/{fileID}", fileH.Delete)
			r.Get("/files/{fileID}", fileH.ServeRaw)
			r.Get("/files/{fileID}/extracted", fileH.Extracted)
		}
	})
	return r
}
