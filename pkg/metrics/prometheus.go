// Package metrics provides Prometheus metrics for chart generation and the
// preview server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Defaults applied by NewManager.
const (
	DefaultNamespace = "radar"
	DefaultSubsystem = "chart"
)

// DefaultBuckets are the latency histogram buckets in milliseconds.
var DefaultBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000} //nolint:gochecknoglobals // read-only defaults

// Manager manages all Prometheus metrics for the radar tool.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Rendering
	chartsRendered *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	renderLatency  *prometheus.HistogramVec

	// Data
	tableEntities   prometheus.Gauge
	tableDimensions prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

var (
	mu            sync.RWMutex //nolint:gochecknoglobals // guards the globals below
	globalManager *Manager     //nolint:gochecknoglobals // intentional global for singleton metrics manager
	// Custom registry to avoid default Go metrics.
	customRegistry *prometheus.Registry //nolint:gochecknoglobals // intentional global for metrics registry
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Init()
}

// Init replaces the global manager with one built from opts on a fresh
// registry. Call it once at startup, before serving the registry.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	m := NewManager(append(append([]Option(nil), opts...), WithPrometheusRegistry(registry))...)
	mu.Lock()
	globalManager, customRegistry = m, registry
	mu.Unlock()
}

func current() *Manager {
	mu.RLock()
	defer mu.RUnlock()
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        DefaultNamespace,
		subsystem:        DefaultSubsystem,
		histogramBuckets: append([]float64(nil), DefaultBuckets...),
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	if !m.enabled {
		auto = promauto.With(nil)
	}

	m.chartsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rendered_total",
		Help:        "Total number of charts written, by kind and format",
		ConstLabels: m.customLabels,
	}, []string{"kind", "format"})

	m.renderErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_errors_total",
		Help:        "Total number of failed chart renders, by kind",
		ConstLabels: m.customLabels,
	}, []string{"kind"})

	m.renderLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_latency_milliseconds",
		Help:        "Time to build and write one chart in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"kind"})

	m.tableEntities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "table_entities",
		Help:        "Number of entities in the most recently loaded table",
		ConstLabels: m.customLabels,
	})

	m.tableDimensions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "table_dimensions",
		Help:        "Number of dimensions in the most recently loaded table",
		ConstLabels: m.customLabels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Total number of errors by endpoint",
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordChartRendered counts a written chart. kind is combined or individual.
func RecordChartRendered(kind, format string) {
	current().chartsRendered.WithLabelValues(kind, format).Inc()
}

// RecordRenderError counts a failed render.
func RecordRenderError(kind string) {
	current().renderErrors.WithLabelValues(kind).Inc()
}

// RecordRenderLatency records how long one chart took in milliseconds.
func RecordRenderLatency(kind string, latencyMs float64) {
	current().renderLatency.WithLabelValues(kind).Observe(latencyMs)
}

// UpdateTableShape sets the entity and dimension gauges.
func UpdateTableShape(entities, dimensions int) {
	m := current()
	m.tableEntities.Set(float64(entities))
	m.tableDimensions.Set(float64(dimensions))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	current().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	current().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	current().errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return customRegistry
}
