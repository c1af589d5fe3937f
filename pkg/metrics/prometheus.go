// Package metrics provides Prometheus metrics for the live updates service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Event flow
	eventsReceived  prometheus.Counter
	eventsDuplicate prometheus.Counter
	eventsPresented *prometheus.CounterVec
	renderErrors    *prometheus.CounterVec

	// Surface
	displays           *prometheus.CounterVec
	displayLatency     *prometheus.HistogramVec
	channelsRegistered prometheus.Gauge
	trayNotifications  prometheus.Gauge

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "liveupdates",
		subsystem:        "presenter",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
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
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.eventsReceived = m.counter("events_received_total", "Total number of push events received")
	m.eventsDuplicate = m.counter("events_duplicate_total", "Total number of redelivered push events dropped")
	m.eventsPresented = m.counterVec("events_presented_total", "Events presented by classification", "kind")
	m.renderErrors = m.counterVec("render_errors_total", "Events whose rendering failed and were dropped", "kind")

	m.displays = m.counterVec("displays_total", "Display requests issued per surface", "surface", "outcome")
	m.displayLatency = m.histogramVec("display_latency_milliseconds", "Display request latency in milliseconds", "surface")
	m.channelsRegistered = m.gauge("channels_registered", "Number of notification channels registered")
	m.trayNotifications = m.gauge("tray_notifications", "Notifications currently posted in the tray")

	m.queueSize = m.gauge("queue_size", "Current number of queued events")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Rejected enqueue attempts", "reason")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.errorsByComponent = m.counterVec("errors_total", "Errors by component and type", "component", "type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordEventReceived counts an accepted push.
func RecordEventReceived() { globalManager.eventsReceived.Inc() }

// RecordEventDuplicate counts a redelivered push.
func RecordEventDuplicate() { globalManager.eventsDuplicate.Inc() }

// RecordEventPresented counts an event by its classification.
func RecordEventPresented(kind string) { globalManager.eventsPresented.WithLabelValues(kind).Inc() }

// RecordRenderError counts a dropped render.
func RecordRenderError(kind string) { globalManager.renderErrors.WithLabelValues(kind).Inc() }

// RecordDisplay counts a display request and its latency.
func RecordDisplay(surface string, ok bool, latencyMs float64) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	globalManager.displays.WithLabelValues(surface, outcome).Inc()
	globalManager.displayLatency.WithLabelValues(surface).Observe(latencyMs)
}

// UpdateChannelsRegistered sets the registered channel count.
func UpdateChannelsRegistered(n int) { globalManager.channelsRegistered.Set(float64(n)) }

// UpdateTrayNotifications sets the number of posted notifications.
func UpdateTrayNotifications(n int) { globalManager.trayNotifications.Set(float64(n)) }

// UpdateQueueSize sets the queue length.
func UpdateQueueSize(size int) { globalManager.queueSize.Set(float64(size)) }

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent counts an error.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
