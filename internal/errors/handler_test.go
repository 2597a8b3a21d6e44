package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyclean/internal/loader"
	"surveyclean/internal/pipeline"
)

func newHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewJSONHandler(io.Discard, nil)), false)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError_UnsupportedFile(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)

	h.HandleError(rec, req, &loader.UnsupportedFormatError{Filename: "notes.txt"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeUnsupportedFile, body["type"])
	assert.Equal(t, "notes.txt", body["file"])
}

func TestHandleError_MissingColumn(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)

	h.HandleError(rec, req, fmt.Errorf("cleaning failed: %w", &pipeline.FatalStructureError{Column: "Q35"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeMissingColumn, body["type"])
	assert.Equal(t, "Q35", body["column"])
}

func TestHandleError_ParseFailed(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)

	h.HandleError(rec, req, &loader.LoadError{Format: loader.FormatCSV, Err: fmt.Errorf("bad quoting")})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeParseFailed, body["type"])
	assert.Equal(t, "csv", body["format"])
}

func TestHandleError_ContextDeadline(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)

	h.HandleError(rec, req, fmt.Errorf("wrapped: %w", context.DeadlineExceeded))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, TypeTimeout, decodeProblem(t, rec)["type"])
}

func TestHandleError_APIError(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)

	h.HandleError(rec, req, StructureError("export.csv", "Q35"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeMissingColumn, body["type"])
	assert.Equal(t, "MISSING_REQUIRED_COLUMN", body["error_code"])
}

func TestHandleError_UnknownErrorIsInternal(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)

	h.HandleError(rec, req, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
	assert.NotContains(t, body["detail"], "boom", "internal details are not leaked")
}

func TestHandleError_NilIsNoop(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	h.HandleError(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	h := newHandler()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)

	h.NotFound(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, rec)["type"])
}

func TestProblemDetails_MarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(400, TypeValidation, "Validation Failed", "bad field", "/api/upload").
		WithExtension("field", "files")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "files", body["field"])
	assert.Equal(t, float64(400), body["status"])
}
