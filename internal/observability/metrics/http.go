package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics instruments the API process: request volume/latency plus
// upload and trigger counters.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge
	uploadsTotal    *prometheus.CounterVec
	triggersTotal   *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docuintel",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docuintel",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docuintel",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docuintel",
			Subsystem: "files",
			Name:      "uploads_total",
			Help:      "Total accepted uploads by outcome.",
		},
		[]string{"service", "status"},
	)
	triggersTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docuintel",
			Subsystem: "files",
			Name:      "categorization_triggers_total",
			Help:      "Total categorization tasks published by trigger source.",
		},
		[]string{"service", "source"},
	)

	registry.MustRegister(requestTotal, requestDuration, requestInFlight, uploadsTotal, triggersTotal)

	return &HTTPServerMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		uploadsTotal:    uploadsTotal,
		triggersTotal:   triggersTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusCodeRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordUpload(service string, err error) {
	status := "accepted"
	if err != nil {
		status = "rejected"
	}
	m.uploadsTotal.WithLabelValues(service, status).Inc()
}

func (m *HTTPServerMetrics) RecordTrigger(service, source string) {
	if source == "" {
		source = "unknown"
	}
	m.triggersTotal.WithLabelValues(service, source).Inc()
}

// normalizePath collapses ids so the path label stays low-cardinality.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/files/") && path != "/v1/files/unassigned":
		rest := strings.TrimPrefix(path, "/v1/files/")
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return "/v1/files/{file_id}/" + rest[idx+1:]
		}
		return "/v1/files/{file_id}"
	case strings.HasPrefix(path, "/v1/folders/"):
		rest := strings.TrimPrefix(path, "/v1/folders/")
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return "/v1/folders/{folder_id}/" + rest[idx+1:]
		}
		return "/v1/folders/{folder_id}"
	default:
		return path
	}
}

type statusCodeRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusCodeRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
