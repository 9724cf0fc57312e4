// Package http wires the gin route tree and the HTTP server around the
// structure API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/molscope/molscope/internal/infrastructure/monitoring/logging"
	"github.com/molscope/molscope/internal/infrastructure/monitoring/prometheus"
	"github.com/molscope/molscope/internal/interfaces/http/handlers"
	"github.com/molscope/molscope/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies required
// to construct the complete route tree.
type RouterConfig struct {
	StructureHandler *handlers.StructureHandler
	HealthHandler    *handlers.HealthHandler

	Logger  logging.Logger
	Metrics *prometheus.Metrics

	// Mode is the gin mode: debug, release, or test.
	Mode string

	CORS middleware.CORSConfig
}

// NewRouter constructs the complete route tree: global middleware, public
// health endpoints, the metrics scrape endpoint, and the /api/v1 structure
// resource group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.HTTPMetrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	registerStructureRoutes(api, cfg.StructureHandler)

	return r
}

// registerStructureRoutes mounts the structure endpoints under /structures.
func registerStructureRoutes(r *gin.RouterGroup, h *handlers.StructureHandler) {
	if h == nil {
		return
	}
	sr := r.Group("/structures")
	{
		sr.POST("/upload", h.Upload)
		sr.GET("/examples", h.ListExamples)
		sr.GET("/examples/:name", h.GetExample)
		sr.POST("/summarize", h.Summarize)
		sr.GET("/history", h.History)
	}
}
