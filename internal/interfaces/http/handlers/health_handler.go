package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 5 * time.Second

// Checker is a named dependency probe. Infrastructure clients (postgres,
// redis, minio) implement it.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version  string
	checkers []Checker
}

// NewHealthHandler builds the handler over the given dependency probes.
func NewHealthHandler(version string, checkers ...Checker) *HealthHandler {
	return &HealthHandler{version: version, checkers: checkers}
}

// Liveness handles GET /healthz: the process is up.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Readiness handles GET /readyz: every registered dependency answers its
// probe. Any failure yields 503 with the per-component breakdown.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	components := make(map[string]string, len(h.checkers))
	ready := true
	for _, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			components[checker.Name()] = err.Error()
			ready = false
			continue
		}
		components[checker.Name()] = "ok"
	}

	status := http.StatusOK
	state := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		state = "not ready"
	}
	c.JSON(status, gin.H{
		"status":     state,
		"version":    h.version,
		"components": components,
	})
}
