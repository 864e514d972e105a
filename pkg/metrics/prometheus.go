// Package metrics provides Prometheus metrics for the gestura recognizer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by gestura.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	registry       prometheus.Registerer

	// Input path
	framesIngested prometheus.Counter
	framesDropped  *prometheus.CounterVec
	framesRepeated prometheus.Counter
	inputRejected  *prometheus.CounterVec
	activeContacts prometheus.Gauge
	frameLatency   prometheus.Histogram

	// Classification
	gesturesDetected *prometheus.CounterVec
	sequencesReset   *prometheus.CounterVec
	observerCount    prometheus.Gauge

	// Dispatch
	gesturesDispatched *prometheus.CounterVec
	profileMisses      prometheus.Counter
	actionsExecuted    *prometheus.CounterVec
	actionErrors       *prometheus.CounterVec
	actionLatency      prometheus.Histogram
	profileLoads       prometheus.Counter

	// Queues
	queueSize     *prometheus.GaugeVec
	queueCapacity *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "gestura",
		subsystem:      "recognizer",
		latencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.framesIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_ingested_total",
		Help:      "Touch frames consumed by the recognizer",
	})
	m.framesDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_dropped_total",
		Help:      "Touch frames rejected before classification",
	}, []string{"reason"})
	m.framesRepeated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frames_duplicate_total",
		Help:      "Batched frames skipped because a retry already delivered them",
	})
	m.inputRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "input_rejected_total",
		Help:      "Touch samples skipped because they were malformed",
	}, []string{"reason"})
	m.activeContacts = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_contacts",
		Help:      "Contacts currently down on the surface",
	})
	m.frameLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "frame_processing_milliseconds",
		Help:      "Time spent tracking and classifying one frame",
		Buckets:   m.latencyBuckets,
	})

	m.gesturesDetected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gestures_detected_total",
		Help:      "Gesture events emitted by the classifier",
	}, []string{"kind", "direction"})
	m.sequencesReset = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sequence_resets_total",
		Help:      "Classifier resets by cause",
	}, []string{"cause"})
	m.observerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observers",
		Help:      "Registered gesture observers",
	})

	m.gesturesDispatched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gestures_dispatched_total",
		Help:      "Gestures resolved to a binding and handed to the action pool",
	}, []string{"outcome"})
	m.profileMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profile_misses_total",
		Help:      "Gestures without an enabled binding in the active profile",
	})
	m.actionsExecuted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "actions_executed_total",
		Help:      "Actions executed by kind",
	}, []string{"action"})
	m.actionErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "action_errors_total",
		Help:      "Action executions that failed, by kind",
	}, []string{"action"})
	m.actionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "action_latency_milliseconds",
		Help:      "Action executor latency in milliseconds",
		Buckets:   m.latencyBuckets,
	})
	m.profileLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "profile_loads_total",
		Help:      "Active profile swaps",
	})

	m.queueSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Items waiting in a queue",
	}, []string{"queue"})
	m.queueCapacity = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured queue capacity",
	}, []string{"queue"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint, error type and severity",
	}, []string{"endpoint", "error_type", "severity"})
}

// RecordFrameIngested increments the ingested frame counter.
func RecordFrameIngested() {
	globalManager.framesIngested.Inc()
}

// RecordFrameDropped counts a frame that never reached the classifier.
func RecordFrameDropped(reason string) {
	globalManager.framesDropped.WithLabelValues(reason).Inc()
}

// RecordFrameDuplicate counts a batched frame that was already accepted.
func RecordFrameDuplicate() {
	globalManager.framesRepeated.Inc()
}

// RecordInputRejected counts a skipped touch sample.
func RecordInputRejected(reason string) {
	globalManager.inputRejected.WithLabelValues(reason).Inc()
}

// UpdateActiveContacts sets the number of contacts currently down.
func UpdateActiveContacts(n int) {
	globalManager.activeContacts.Set(float64(n))
}

// RecordFrameLatency records per-frame processing time in milliseconds.
func RecordFrameLatency(ms float64) {
	globalManager.frameLatency.Observe(ms)
}

// RecordGestureDetected counts an emitted gesture.
func RecordGestureDetected(kind, direction string) {
	globalManager.gesturesDetected.WithLabelValues(kind, direction).Inc()
}

// RecordSequenceReset counts a classifier reset.
func RecordSequenceReset(cause string) {
	globalManager.sequencesReset.WithLabelValues(cause).Inc()
}

// UpdateObserverCount sets the number of registered observers.
func UpdateObserverCount(n int) {
	globalManager.observerCount.Set(float64(n))
}

// RecordGestureDispatched counts a dispatch outcome (submitted, rejected).
func RecordGestureDispatched(outcome string) {
	globalManager.gesturesDispatched.WithLabelValues(outcome).Inc()
}

// RecordProfileMiss counts a gesture with no enabled binding.
func RecordProfileMiss() {
	globalManager.profileMisses.Inc()
}

// RecordActionExecuted counts a successful action.
func RecordActionExecuted(action string) {
	globalManager.actionsExecuted.WithLabelValues(action).Inc()
}

// RecordActionError counts a failed action.
func RecordActionError(action string) {
	globalManager.actionErrors.WithLabelValues(action).Inc()
}

// RecordActionLatency records action latency in milliseconds.
func RecordActionLatency(ms float64) {
	globalManager.actionLatency.Observe(ms)
}

// RecordProfileLoad counts an active profile swap.
func RecordProfileLoad() {
	globalManager.profileLoads.Inc()
}

// UpdateQueueSize sets the backlog of the named queue.
func UpdateQueueSize(queue string, size int) {
	globalManager.queueSize.WithLabelValues(queue).Set(float64(size))
}

// UpdateQueueCapacity sets the capacity of the named queue.
func UpdateQueueCapacity(queue string, capacity int) {
	globalManager.queueCapacity.WithLabelValues(queue).Set(float64(capacity))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordHTTPError counts an HTTP error response.
func RecordHTTPError(endpoint, errorType, severity string) {
	globalManager.httpErrors.WithLabelValues(endpoint, errorType, severity).Inc()
}

// GetRegistry returns the registry backing the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
