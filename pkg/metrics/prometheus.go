// Package metrics provides Prometheus metrics for the DARA query service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric name parts.
const (
	namespace    = "dara"
	apiSubsystem = "api"
)

// Default histogram buckets in milliseconds. Queries over in-memory tables
// mostly finish well under a millisecond.
var ( //nolint:gochecknoglobals // bucket defaults
	defaultQueryBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}
	defaultHTTPBuckets  = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}
	gcPauseBuckets      = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50}
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	queryBuckets []float64
	httpBuckets  []float64
	enabled      bool
	registry     prometheus.Registerer

	// Dataset metrics, set once at startup.
	datasetRows         *prometheus.GaugeVec
	datasetLoadDuration *prometheus.GaugeVec
	datasetLoadErrors   *prometheus.CounterVec

	// Query metrics.
	queryDuration *prometheus.HistogramVec
	queryResults  *prometheus.CounterVec
	queryErrors   *prometheus.CounterVec

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpNotModified     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec
	panicsRecovered     prometheus.Counter

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		queryBuckets: defaultQueryBuckets,
		httpBuckets:  defaultHTTPBuckets,
		enabled:      true,
		registry:     prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // metric declarations
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "rows",
		Help:      "Number of rows loaded per dataset table",
	}, []string{"dataset"})

	m.datasetLoadDuration = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "load_duration_milliseconds",
		Help:      "Time spent reading and validating each dataset at startup",
	}, []string{"dataset"})

	m.datasetLoadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dataset",
		Name:      "load_errors_total",
		Help:      "Dataset load failures (fatal at startup)",
	}, []string{"dataset"})

	m.queryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "query",
		Name:      "duration_milliseconds",
		Help:      "Histogram of query evaluation time in milliseconds",
		Buckets:   m.queryBuckets,
	}, []string{"query"})

	m.queryResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "query",
		Name:      "results_total",
		Help:      "Total number of queries evaluated, labelled by whether they matched rows",
	}, []string{"query", "outcome"})

	m.queryErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "query",
		Name:      "errors_total",
		Help:      "Total number of query failures",
	}, []string{"query"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: apiSubsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: apiSubsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.httpBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpNotModified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: apiSubsystem,
		Name:      "http_not_modified_total",
		Help:      "Responses answered with 304 because the client ETag matched",
	}, []string{"endpoint"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: apiSubsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: apiSubsystem,
		Name:      "errors_by_type_total",
		Help:      "Error responses by error type and severity",
	}, []string{"error_type", "severity"})

	m.panicsRecovered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: apiSubsystem,
		Name:      "panics_recovered_total",
		Help:      "Handler panics converted into 500 responses",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   gcPauseBuckets,
	})
}

// Manager methods. The package-level helpers below delegate to the global manager.

// SetDatasetRows records the row count of a loaded dataset table.
func (m *Manager) SetDatasetRows(dataset string, rows int) {
	if !m.enabled {
		return
	}
	m.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// SetDatasetLoadDuration records how long a dataset took to load.
func (m *Manager) SetDatasetLoadDuration(dataset string, ms float64) {
	if !m.enabled {
		return
	}
	m.datasetLoadDuration.WithLabelValues(dataset).Set(ms)
}

// RecordDatasetLoadError counts a failed dataset load.
func (m *Manager) RecordDatasetLoadError(dataset string) {
	if !m.enabled {
		return
	}
	m.datasetLoadErrors.WithLabelValues(dataset).Inc()
}

// RecordQuery records one query evaluation.
func (m *Manager) RecordQuery(query string, ms float64, empty bool) {
	if !m.enabled {
		return
	}
	m.queryDuration.WithLabelValues(query).Observe(ms)
	outcome := "rows"
	if empty {
		outcome = "empty"
	}
	m.queryResults.WithLabelValues(query, outcome).Inc()
}

// RecordQueryError counts a failed query evaluation.
func (m *Manager) RecordQueryError(query string) {
	if !m.enabled {
		return
	}
	m.queryErrors.WithLabelValues(query).Inc()
}

// RecordHTTPRequest counts an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, ms float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordNotModified counts a 304 response.
func (m *Manager) RecordNotModified(endpoint string) {
	if !m.enabled {
		return
	}
	m.httpNotModified.WithLabelValues(endpoint).Inc()
}

// RecordError counts an error response.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordPanic counts a recovered handler panic.
func (m *Manager) RecordPanic() {
	if !m.enabled {
		return
	}
	m.panicsRecovered.Inc()
}

// Dataset metrics.

// SetDatasetRows records the row count of a loaded dataset table.
func SetDatasetRows(dataset string, rows int) { globalManager.SetDatasetRows(dataset, rows) }

// SetDatasetLoadDuration records how long a dataset took to load in milliseconds.
func SetDatasetLoadDuration(dataset string, ms float64) {
	globalManager.SetDatasetLoadDuration(dataset, ms)
}

// RecordDatasetLoadError counts a failed dataset load.
func RecordDatasetLoadError(dataset string) { globalManager.RecordDatasetLoadError(dataset) }

// Query metrics.

// RecordQuery records one query evaluation and whether it produced any rows.
func RecordQuery(query string, ms float64, empty bool) { globalManager.RecordQuery(query, ms, empty) }

// RecordQueryError counts a failed query evaluation.
func RecordQueryError(query string) { globalManager.RecordQueryError(query) }

// HTTP metrics.

// RecordHTTPRequest counts an HTTP request and observes its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, ms float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, ms)
}

// RecordNotModified counts a 304 response.
func RecordNotModified(endpoint string) { globalManager.RecordNotModified(endpoint) }

// RecordError counts an error response by endpoint and type.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// RecordPanic counts a recovered handler panic.
func RecordPanic() { globalManager.RecordPanic() }

// System metrics.

// UpdateSystemMemoryUsage updates the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
