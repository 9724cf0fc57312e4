package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscope/molscope/pkg/errors"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                  { return s.name }
func (s stubChecker) Check(_ context.Context) error { return s.err }

func TestLiveness(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler("1.2.3")

	r := gin.New()
	r.GET("/healthz", h.Liveness)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestReadinessAllHealthy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler("dev",
		stubChecker{name: "postgres"},
		stubChecker{name: "redis"},
	)

	r := gin.New()
	r.GET("/readyz", h.Readiness)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Components["postgres"])
	assert.Equal(t, "ok", resp.Components["redis"])
}

func TestReadinessDegraded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler("dev",
		stubChecker{name: "postgres"},
		stubChecker{name: "redis", err: errors.New(errors.CodeCacheError, "connection refused")},
	)

	r := gin.New()
	r.GET("/readyz", h.Readiness)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not ready", resp.Status)
	assert.Equal(t, "ok", resp.Components["postgres"])
	assert.Contains(t, resp.Components["redis"], "connection refused")
}
