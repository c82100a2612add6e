package mcp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/docqa/internal/freshness"
)

type stubChecker struct {
	state freshness.State
	err   error
}

func (s *stubChecker) Evaluate() (freshness.State, string, error) {
	return s.state, "abc123", s.err
}

func TestHealthHandler_Healthy(t *testing.T) {
	handler := NewHealthHandler(&stubChecker{state: freshness.StateFresh})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "fresh", resp.Index)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestHealthHandler_EvaluationFailure(t *testing.T) {
	handler := NewHealthHandler(&stubChecker{err: errors.New("corpus unreadable")})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "unavailable", resp.Index)
}
