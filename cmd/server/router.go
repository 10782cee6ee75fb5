package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avollmer/studydeck/internal/api"
	apiMiddleware "github.com/avollmer/studydeck/internal/api/middleware"
	"github.com/avollmer/studydeck/internal/api/shared"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	projectHandler := api.NewProjectHandler(app.projectStore, app.flashcardStore)
	flashcardHandler := api.NewFlashcardHandler(app.projectStore, app.flashcardStore)
	fileHandler := api.NewFileHandler(app.fileStore, app.uploadService, app.storage)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.handleHealth)

		// Project endpoints
		r.Get("/projects", projectHandler.List)
		r.Post("/projects", projectHandler.Create)
		r.Get("/projects/{projectID}", projectHandler.Get)
		r.Patch("/projects/{projectID}", projectHandler.Update)
		r.Delete("/projects/{projectID}", projectHandler.Delete)

		// Flashcard endpoints
		r.Get("/projects/{projectID}/flashcards", flashcardHandler.List)
		r.Post("/projects/{projectID}/flashcards", flashcardHandler.Create)
		r.Patch("/projects/{projectID}/flashcards/{cardID}", flashcardHandler.Update)
		r.Delete("/projects/{projectID}/flashcards/{cardID}", flashcardHandler.Delete)
		r.Post("/projects/{projectID}/flashcards/{cardID}/level", flashcardHandler.UpdateLevel)

		// File endpoints
		r.Post("/projects/{projectID}/files", fileHandler.Upload)
		r.Get("/projects/{projectID}/files", fileHandler.List)
		r.Delete("/projects/{projectID}/files/{fileID}", fileHandler.Delete)
		r.Get("/files/{fileID}", fileHandler.ServeRaw)
		r.Get("/files/{fileID}/extracted", fileHandler.Extracted)
	})

	if app.config.Server.StaticDir != "" {
		r.NotFound(spaHandler(app.config.Server.StaticDir))
	}

	return r
}

// handleHealth reports whether the server is up. It deliberately does not
// touch the database so load balancer probes stay cheap.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "StudyDeck API is running",
	})
}

// spaHandler serves the built frontend from staticDir. Requests for paths
// that do not match a file fall back to index.html so client-side routing
// works on hard refresh.
func spaHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
