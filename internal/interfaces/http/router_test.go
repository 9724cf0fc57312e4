package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/prometheus"
	"github.com/molscope/molscope/internal/interfaces/http/handlers"
	"github.com/molscope/molscope/internal/interfaces/http/middleware"
)

func TestRouterHealthAndMetrics(t *testing.T) {
	r := NewRouter(RouterConfig{
		HealthHandler: handlers.NewHealthHandler("dev"),
		Logger:        logging.NewNopLogger(),
		Metrics:       prometheus.NewMetrics(),
		Mode:          gin.TestMode,
		CORS:          middleware.DefaultCORSConfig(),
	})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	r := NewRouter(RouterConfig{
		Mode: gin.TestMode,
		CORS: middleware.DefaultCORSConfig(),
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	r := NewRouter(RouterConfig{
		Mode: gin.TestMode,
		CORS: middleware.DefaultCORSConfig(),
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/structures/upload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}
