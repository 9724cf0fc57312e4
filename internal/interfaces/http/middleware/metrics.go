package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/molscope/molscope/internal/infrastructure/monitoring/prometheus"
)

// HTTPMetrics returns middleware that records the standard HTTP instruments:
// request counter by method/path/status, duration histogram, and the
// in-flight gauge. The route template (not the raw URL) is used as the path
// label so parameterised routes do not explode cardinality.
func HTTPMetrics(m *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPActiveRequests.Inc()

		c.Next()

		m.HTTPActiveRequests.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
