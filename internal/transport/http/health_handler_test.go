package http

import (
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyclean/internal/services"
)

func newHealthHandler() *HealthHandler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHealthHandler(services.NewHealthService("test", ""), logger)
}

func TestHealthHandler_Health(t *testing.T) {
	h := newHealthHandler()
	rec := httptest.NewRecorder()

	h.Health(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/health", nil))

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestHealthHandler_LiveAndReady(t *testing.T) {
	h := newHealthHandler()

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/health/live", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"alive":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ready":true}`, rec.Body.String())
}

func TestHealthHandler_Version(t *testing.T) {
	h := newHealthHandler()
	rec := httptest.NewRecorder()

	h.Version(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/version", nil))

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, body["go_version"])
}
