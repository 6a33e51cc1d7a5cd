// Package metrics provides Prometheus metrics for the PELE rating service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Rating pipeline
	rowsScored       prometheus.Counter
	groupsScored     prometheus.Counter
	computeDuration  *prometheus.HistogramVec
	validationErrors *prometheus.CounterVec

	// Result cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Ingestion
	rowsImported   *prometheus.CounterVec
	duplicateRows  prometheus.Counter
	datasetRows    prometheus.Gauge
	datasetPlayers prometheus.Gauge
	datasetLoaded  prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         prometheus.Counter

	// Process
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record/Update helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry served on /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pele",
		subsystem:        "rating",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels, Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.rowsScored = m.counter("rows_scored_total", "Match rows passed through the rating pipeline")
	m.groupsScored = m.counter("groups_scored_total", "Aggregated groups produced by the rating pipeline")
	m.computeDuration = m.histogramVec("compute_duration_seconds",
		"Time spent computing a rating table", "profile", "grouped")
	m.validationErrors = m.counterVec("validation_errors_total",
		"Rating requests rejected by input validation", "reason")

	m.cacheHits = m.counter("cache_hits_total", "Rating results served from cache")
	m.cacheMisses = m.counter("cache_misses_total", "Rating results computed on demand")

	m.rowsImported = m.counterVec("rows_imported_total", "Rows read from input files", "format")
	m.duplicateRows = m.counter("duplicate_rows_total", "Rows dropped as (player, match) duplicates")
	m.datasetRows = m.gauge("dataset_rows", "Rows in the loaded dataset")
	m.datasetPlayers = m.gauge("dataset_players", "Distinct players in the loaded dataset")
	m.datasetLoaded = m.gauge("dataset_loaded_timestamp_seconds", "Unix time of the last dataset load")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_seconds", "HTTP request latency",
		"endpoint", "method", "status_code")
	m.rateLimited = m.counter("http_rate_limited_total", "Requests rejected by the rate limiter")

	m.memoryUsage = m.gauge("memory_usage_bytes", "Heap bytes allocated")
	m.goroutineCount = m.gauge("goroutines", "Number of goroutines")
}

// RecordRowsScored adds n scored rows.
func RecordRowsScored(n int) { globalManager.rowsScored.Add(float64(n)) }

// RecordGroupsScored adds n aggregated groups.
func RecordGroupsScored(n int) { globalManager.groupsScored.Add(float64(n)) }

// RecordComputeDuration observes one rating computation.
func RecordComputeDuration(profile string, grouped bool, seconds float64) {
	g := "false"
	if grouped {
		g = "true"
	}
	globalManager.computeDuration.WithLabelValues(profile, g).Observe(seconds)
}

// RecordValidationError counts a rejected rating request.
func RecordValidationError(reason string) {
	globalManager.validationErrors.WithLabelValues(reason).Inc()
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// RecordRowsImported adds n rows read in the given input format.
func RecordRowsImported(format string, n int) {
	globalManager.rowsImported.WithLabelValues(format).Add(float64(n))
}

// RecordDuplicateRows adds n dropped duplicates.
func RecordDuplicateRows(n int) { globalManager.duplicateRows.Add(float64(n)) }

// UpdateDataset publishes the size of the loaded dataset.
func UpdateDataset(rows, players int, loadedUnix int64) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetPlayers.Set(float64(players))
	globalManager.datasetLoaded.Set(float64(loadedUnix))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// RecordRateLimited counts a request rejected with 429.
func RecordRateLimited() { globalManager.rateLimited.Inc() }

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.memoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.goroutineCount.Set(float64(count)) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
