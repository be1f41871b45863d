package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
	persistFailures *prometheus.CounterVec
	gateDecisions   *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	persistCount         uint64
	persistFailureCount  uint64
}

// MetricsSnapshot summarises the counters for the metrics JSON endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	PersistTotal             uint64    `json:"persist_total"`
	PersistFailures          uint64    `json:"persist_failures"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	persistDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blob_persist_duration_seconds",
		Help:    "Duration of whole-collection writes per blob key",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"key"})

	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blob_persist_failures_total",
		Help: "Failed blob writes per key",
	}, []string{"key"})

	gateDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "access_gate_decisions_total",
		Help: "Page navigations by gate outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, persistDuration, persistFailures, gateDecisions, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		persistDuration: persistDuration,
		persistFailures: persistFailures,
		gateDecisions:   gateDecisions,
	}
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObservePersist records a blob write.
func (m *MetricsService) ObservePersist(key string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.persistDuration.WithLabelValues(key).Observe(duration.Seconds())
	atomic.AddUint64(&m.persistCount, 1)
	if err != nil {
		m.persistFailures.WithLabelValues(key).Inc()
		atomic.AddUint64(&m.persistFailureCount, 1)
	}
}

// RecordGateDecision counts an access gate outcome.
func (m *MetricsService) RecordGateDecision(outcome string) {
	if m == nil {
		return
	}
	m.gateDecisions.WithLabelValues(outcome).Inc()
}

// Snapshot returns aggregated metrics.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		PersistTotal:             atomic.LoadUint64(&m.persistCount),
		PersistFailures:          atomic.LoadUint64(&m.persistFailureCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
