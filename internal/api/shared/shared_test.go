package shared

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, TraceIDLength*2)

	other := SetTraceID(context.Background())
	assert.NotEqual(t, traceID, GetTraceID(other))
}

func TestGetTraceIDWithoutValue(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetTraceID(context.Background()))
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/api/projects", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, 404, "Project not found")

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Project not found", body.Error)
	assert.Equal(t, GetTraceID(req.Context()), body.TraceID)
}

func TestRespondWithErrorAndLogSanitizesOutput(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/api/projects", nil)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, 500, "Internal error",
		assert.AnError)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal error", body.Error)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

type validatedRequest struct {
	Title string `json:"title" validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidateRequest(validatedRequest{}))
	assert.NoError(t, ValidateRequest(validatedRequest{Title: "Biology"}))
}
