// Package metrics provides Prometheus metrics for the incentivo service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second

	// Score histogram: 10, 20, ... 100.
	scoreBucketStart = 10
	scoreBucketWidth = 10
	scoreBucketCount = 10

	// Latency histogram in milliseconds: 0.25ms doubling up to about 0.5s.
	latencyBucketStart  = 0.25
	latencyBucketFactor = 2
	latencyBucketCount  = 12
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	latencyBuckets   []float64
	scoreBuckets     []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Scoring
	tasksScored *prometheus.CounterVec
	taskScore   prometheus.Histogram

	// Aggregates, refreshed whenever statistics are recomputed
	evaluatedTasks prometheus.Gauge
	pendingTasks   prometheus.Gauge
	averageScore   prometheus.Gauge
	employees      prometheus.Gauge

	// Store
	storeOperationDuration *prometheus.HistogramVec
	storeErrors            *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// Backup and autosave
	importedTasks   *prometheus.CounterVec
	autosaveFlushes *prometheus.CounterVec
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
		namespace:        "incentivo",
		subsystem:        "evaluation",
		latencyBuckets:   prometheus.ExponentialBuckets(latencyBucketStart, latencyBucketFactor, latencyBucketCount),
		scoreBuckets:     prometheus.LinearBuckets(scoreBucketStart, scoreBucketWidth, scoreBucketCount),
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.tasksScored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("tasks_scored_total"),
		Help:        "Score computations by task type and outcome (scored, pending)",
		ConstLabels: labels,
	}, []string{"type", "outcome"})

	m.taskScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("task_score"),
		Help:        "Distribution of computed task scores",
		Buckets:     m.scoreBuckets,
		ConstLabels: labels,
	})

	m.evaluatedTasks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("evaluated_tasks"),
		Help:        "Tasks carrying a score in the last computed statistics",
		ConstLabels: labels,
	})

	m.pendingTasks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("pending_tasks"),
		Help:        "Tasks waiting for evaluation in the last computed statistics",
		ConstLabels: labels,
	})

	m.averageScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("average_score"),
		Help:        "Organization-wide average score in the last computed statistics",
		ConstLabels: labels,
	})

	m.employees = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("employees"),
		Help:        "Number of registered employees",
		ConstLabels: labels,
	})

	m.storeOperationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_operation_duration_milliseconds"),
		Help:        "Task store operation latency in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	}, []string{"op"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_errors_total"),
		Help:        "Failed task store operations",
		ConstLabels: labels,
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_errors_total"),
		Help:        "HTTP errors by endpoint, method and error type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.importedTasks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("imported_tasks_total"),
		Help:        "Tasks processed by backup import, by outcome (added, renumbered, replaced)",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.autosaveFlushes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("autosave_flushes_total"),
		Help:        "Deferred note saves by outcome (ok, error)",
		ConstLabels: labels,
	}, []string{"outcome"})
}

// RecordTaskScored records a score computation. A nil score counts as pending.
func (m *Manager) RecordTaskScored(taskType string, score *float64) {
	if !m.enabled {
		return
	}
	if score == nil {
		m.tasksScored.WithLabelValues(taskType, "pending").Inc()
		return
	}
	m.tasksScored.WithLabelValues(taskType, "scored").Inc()
	m.taskScore.Observe(*score)
}

// UpdateAggregates publishes the latest organization-wide figures.
func (m *Manager) UpdateAggregates(evaluated, pending int, average float64) {
	if !m.enabled {
		return
	}
	m.evaluatedTasks.Set(float64(evaluated))
	m.pendingTasks.Set(float64(pending))
	m.averageScore.Set(average)
}

// UpdateEmployees sets the employee count.
func (m *Manager) UpdateEmployees(count int) {
	if !m.enabled {
		return
	}
	m.employees.Set(float64(count))
}

// RecordStoreOperation records a store call and its failure, if any.
func (m *Manager) RecordStoreOperation(op string, duration time.Duration, err error) {
	if !m.enabled {
		return
	}
	m.storeOperationDuration.WithLabelValues(op).Observe(float64(duration) / float64(time.Millisecond))
	if err != nil {
		m.storeErrors.WithLabelValues(op).Inc()
	}
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP error by endpoint.
func (m *Manager) RecordHTTPError(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordImportedTasks adds n tasks to an import outcome.
func (m *Manager) RecordImportedTasks(outcome string, n int) {
	if !m.enabled || n <= 0 {
		return
	}
	m.importedTasks.WithLabelValues(outcome).Add(float64(n))
}

// RecordAutosaveFlush records a deferred note save.
func (m *Manager) RecordAutosaveFlush(err error) {
	if !m.enabled {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.autosaveFlushes.WithLabelValues(outcome).Inc()
}

// Package-level helpers delegate to the global manager.

// RecordTaskScored records a score computation on the global manager.
func RecordTaskScored(taskType string, score *float64) {
	globalManager.RecordTaskScored(taskType, score)
}

// UpdateAggregates publishes organization-wide figures on the global manager.
func UpdateAggregates(evaluated, pending int, average float64) {
	globalManager.UpdateAggregates(evaluated, pending, average)
}

// UpdateEmployees sets the employee count on the global manager.
func UpdateEmployees(count int) {
	globalManager.UpdateEmployees(count)
}

// RecordStoreOperation records a store call on the global manager.
func RecordStoreOperation(op string, duration time.Duration, err error) {
	globalManager.RecordStoreOperation(op, duration, err)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError records an HTTP error on the global manager.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.RecordHTTPError(endpoint, method, errorType)
}

// RecordImportedTasks records imported tasks on the global manager.
func RecordImportedTasks(outcome string, n int) {
	globalManager.RecordImportedTasks(outcome, n)
}

// RecordAutosaveFlush records a deferred note save on the global manager.
func RecordAutosaveFlush(err error) {
	globalManager.RecordAutosaveFlush(err)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns how often background aggregate refreshes should run.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}
