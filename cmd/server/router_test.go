package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avollmer/studydeck/internal/config"
)

func newTestApplication(t *testing.T, staticDir string) *application {
	t.Helper()

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:      8080,
				LogLevel:  "info",
				StaticDir: staticDir,
			},
		},
		logger: slog.Default(),
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, "")
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestStaticFallback(t *testing.T) {
	t.Parallel()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(staticDir, "index.html"), []byte("<html>studydeck</html>"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(staticDir, "app.js"), []byte("console.log('app')"), 0o644))

	app := newTestApplication(t, staticDir)
	router := app.setupRouter()

	t.Run("existing asset is served directly", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "console.log('app')", rec.Body.String())
	})

	t.Run("client-side route falls back to index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/some-id", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<html>studydeck</html>", rec.Body.String())
	})

	t.Run("unknown api path stays 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNoStaticDirDisablesFallback(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t, "")
	router := app.setupRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
