// Package prometheus exposes the service's metric instruments on a private
// registry, keeping the default global registry untouched so tests can
// construct isolated Metrics instances freely.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "molscope"

// DefaultHTTPDurationBuckets spans the expected latency of parse-and-respond
// request handling.
var DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// DefaultAtomCountBuckets spans typical structure sizes, from small ligands
// to large multi-chain assemblies.
var DefaultAtomCountBuckets = []float64{10, 100, 500, 1000, 5000, 10000, 50000, 100000}

// Metrics holds every instrument the service emits.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  prometheus.Gauge

	// Upload pipeline
	UploadsTotal       *prometheus.CounterVec // outcome: accepted | rejected
	UploadRejections   *prometheus.CounterVec // code: boundary error code
	ParseDuration      prometheus.Histogram
	StructureAtoms     prometheus.Histogram
	SummaryCacheHits   prometheus.Counter
	SummaryCacheMisses prometheus.Counter

	// Example library
	ExampleLoadsTotal *prometheus.CounterVec // name
}

// NewMetrics registers all instruments on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration.",
		Buckets:   DefaultHTTPDurationBuckets,
	}, []string{"method", "path"})

	m.HTTPActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_active_requests",
		Help:      "In-flight HTTP requests.",
	})

	m.UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Structure uploads by outcome.",
	}, []string{"outcome"})

	m.UploadRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rejections_total",
		Help:      "Boundary rejections by error code.",
	}, []string{"code"})

	m.ParseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "parse_duration_seconds",
		Help:      "Time spent summarizing and parsing one structure.",
		Buckets:   DefaultHTTPDurationBuckets,
	})

	m.StructureAtoms = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "structure_atoms",
		Help:      "Atoms per accepted structure.",
		Buckets:   DefaultAtomCountBuckets,
	})

	m.SummaryCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_cache_hits_total",
		Help:      "Summary cache hits.",
	})

	m.SummaryCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_cache_misses_total",
		Help:      "Summary cache misses.",
	})

	m.ExampleLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "example_loads_total",
		Help:      "Bundled example loads by name.",
	}, []string{"name"})

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPActiveRequests,
		m.UploadsTotal,
		m.UploadRejections,
		m.ParseDuration,
		m.StructureAtoms,
		m.SummaryCacheHits,
		m.SummaryCacheMisses,
		m.ExampleLoadsTotal,
	)

	return m
}

// Handler returns the /metrics scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
