// Package metrics provides Prometheus metrics for the spotlight data service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the spotlight service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Upstream fetch metrics
	fetchAttempts *prometheus.CounterVec
	fetchRetries  prometheus.Counter
	fetchDuration prometheus.Histogram

	// Cache metrics
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	responseCacheSize prometheus.Gauge
	athleteCacheSize  prometheus.Gauge

	// Refresh cycle metrics
	refreshCycles   *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	lastRefreshUnix prometheus.Gauge
	leadersSelected prometheus.Counter
	seasonFallbacks prometheus.Counter

	// HTTP API metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "spotlight",
		subsystem:        "core",
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
	auto := promauto.With(m.registry)

	m.fetchAttempts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_attempts_total",
		Help:      "Total upstream fetch attempts by label and outcome",
	}, []string{"label", "outcome"})

	m.fetchRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_retries_total",
		Help:      "Total retried fetch attempts",
	})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_milliseconds",
		Help:      "Upstream fetch duration in milliseconds",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 8000},
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total response cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total response cache misses",
	})

	m.responseCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "response_cache_entries",
		Help:      "Current number of response cache entries",
	})

	m.athleteCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "athlete_cache_entries",
		Help:      "Current number of cached athlete packages",
	})

	m.refreshCycles = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_cycles_total",
		Help:      "Total refresh cycles by result",
	}, []string{"result"})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_milliseconds",
		Help:      "Full refresh cycle duration in milliseconds",
		Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})

	m.lastRefreshUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the last successful refresh",
	})

	m.leadersSelected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaders_selected_total",
		Help:      "Total leader cards produced across refresh cycles",
	})

	m.seasonFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "season_fallbacks_total",
		Help:      "Refresh cycles that fell back to a prior season",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP API requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP API request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// RecordFetchAttempt counts a single fetch attempt by outcome
// (success, retryable, terminal).
func RecordFetchAttempt(label, outcome string) {
	globalManager.fetchAttempts.WithLabelValues(label, outcome).Inc()
}

// RecordFetchRetry counts a retried attempt.
func RecordFetchRetry() {
	globalManager.fetchRetries.Inc()
}

// RecordFetchDuration records a completed fetch duration in milliseconds.
func RecordFetchDuration(ms float64) {
	globalManager.fetchDuration.Observe(ms)
}

// RecordCacheHit counts a response cache hit.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts a response cache miss.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateResponseCacheSize sets the response cache entry gauge.
func UpdateResponseCacheSize(n int) {
	globalManager.responseCacheSize.Set(float64(n))
}

// UpdateAthleteCacheSize sets the athlete package cache gauge.
func UpdateAthleteCacheSize(n int) {
	globalManager.athleteCacheSize.Set(float64(n))
}

// RecordRefreshCycle counts a refresh cycle by result
// (success, empty, error).
func RecordRefreshCycle(result string) {
	globalManager.refreshCycles.WithLabelValues(result).Inc()
}

// RecordRefreshDuration records a refresh cycle duration in milliseconds.
func RecordRefreshDuration(ms float64) {
	globalManager.refreshDuration.Observe(ms)
}

// UpdateLastRefresh marks the last successful refresh time.
func UpdateLastRefresh(unixSeconds float64) {
	globalManager.lastRefreshUnix.Set(unixSeconds)
}

// RecordLeaderSelected counts a produced leader card.
func RecordLeaderSelected() {
	globalManager.leadersSelected.Inc()
}

// RecordSeasonFallback counts a cycle that used a fallback season.
func RecordSeasonFallback() {
	globalManager.seasonFallbacks.Inc()
}

// RecordHTTPRequest counts an API request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records an API request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// GetRegistry returns the custom Prometheus registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
