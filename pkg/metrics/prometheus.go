// Package metrics provides Prometheus metrics for the scorecard render service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scorecard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Render Pipeline Metrics - the hot path
	rendersTotal     prometheus.Counter
	renderFailures   *prometheus.CounterVec
	renderDuration   prometheus.Histogram
	rendersInFlight  prometheus.Gauge
	admissionWait    prometheus.Histogram
	placeholderTiles prometheus.Counter

	// Asset Cache Metrics - lookup and download behavior
	cacheHits       *prometheus.CounterVec
	cacheMisses     prometheus.Counter
	downloads       prometheus.Counter
	downloadErrors  prometheus.Counter
	sharedDownloads prometheus.Counter
	cacheFiles      prometheus.Gauge
	cacheBytes      prometheus.Gauge
	cleanupDeleted  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scorecard",
		subsystem:        "renderer",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.rendersTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "renders_total",
		Help:      "Total number of scoreboard renders completed successfully",
	})

	m.renderFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "render_failures_total",
			Help:      "Total number of failed renders by failure reason",
		},
		[]string{"reason"},
	)

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_duration_milliseconds",
		Help:      "Histogram of end-to-end render latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rendersInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "renders_in_flight",
		Help:      "Number of renders currently holding a composition slot",
	})

	m.admissionWait = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "admission_wait_milliseconds",
		Help:      "Histogram of time spent waiting for a render slot in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.placeholderTiles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "placeholder_tiles_total",
		Help:      "Total number of icon tiles drawn as placeholders after asset failures",
	})

	m.cacheHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "asset_cache_hits_total",
			Help:      "Total number of asset cache hits by lookup source (index, disk)",
		},
		[]string{"source"},
	)

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_cache_misses_total",
		Help:      "Total number of asset cache misses that required a network fetch",
	})

	m.downloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_downloads_total",
		Help:      "Total number of asset downloads performed",
	})

	m.downloadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_download_errors_total",
		Help:      "Total number of failed asset downloads",
	})

	m.sharedDownloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_downloads_shared_total",
		Help:      "Total number of lookups that piggybacked on another caller's in-flight download",
	})

	m.cacheFiles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_cache_files",
		Help:      "Number of files currently in the on-disk asset cache",
	})

	m.cacheBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_cache_bytes",
		Help:      "Total size in bytes of the on-disk asset cache",
	})

	m.cleanupDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "asset_cleanup_deleted_total",
		Help:      "Total number of cached files deleted by age-based cleanup sweeps",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "Histogram of HTTP request latency in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordRender increments the successful renders counter.
func RecordRender() {
	globalManager.rendersTotal.Inc()
}

// RecordRenderFailure increments the render failures counter for a reason.
func RecordRenderFailure(reason string) {
	globalManager.renderFailures.WithLabelValues(reason).Inc()
}

// RecordRenderDuration records end-to-end render latency in milliseconds.
func RecordRenderDuration(latencyMs float64) {
	globalManager.renderDuration.Observe(latencyMs)
}

// RenderStarted marks a render as holding a composition slot.
func RenderStarted() {
	globalManager.rendersInFlight.Inc()
}

// RenderFinished marks a render as having released its composition slot.
func RenderFinished() {
	globalManager.rendersInFlight.Dec()
}

// RecordAdmissionWait records time spent waiting for a render slot.
func RecordAdmissionWait(latencyMs float64) {
	globalManager.admissionWait.Observe(latencyMs)
}

// RecordPlaceholderTile increments the placeholder tile counter.
func RecordPlaceholderTile() {
	globalManager.placeholderTiles.Inc()
}

// RecordCacheHit increments the cache hit counter for a lookup source.
func RecordCacheHit(source string) {
	globalManager.cacheHits.WithLabelValues(source).Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordDownload increments the downloads counter.
func RecordDownload() {
	globalManager.downloads.Inc()
}

// RecordDownloadError increments the failed downloads counter.
func RecordDownloadError() {
	globalManager.downloadErrors.Inc()
}

// RecordSharedDownload increments the piggybacked downloads counter.
func RecordSharedDownload() {
	globalManager.sharedDownloads.Inc()
}

// UpdateCacheStats sets the cache file count and total size gauges.
func UpdateCacheStats(files int, bytes int64) {
	globalManager.cacheFiles.Set(float64(files))
	globalManager.cacheBytes.Set(float64(bytes))
}

// RecordCleanupDeleted adds to the cleanup deletion counter.
func RecordCleanupDeleted(count int) {
	globalManager.cleanupDeleted.Add(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, latencyMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
