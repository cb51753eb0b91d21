package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics instruments the categorization worker: volume, latency,
// concurrency and how long tasks sat in the queue.
type WorkerMetrics struct {
	registry *prometheus.Registry

	categorizeTotal    *prometheus.CounterVec
	categorizeDuration *prometheus.HistogramVec
	categorizeInFlight prometheus.Gauge
	queueLag           *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	categorizeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docuintel",
			Subsystem: "worker",
			Name:      "categorize_total",
			Help:      "Total categorization attempts by status.",
		},
		[]string{"service", "status"},
	)
	categorizeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docuintel",
			Subsystem: "worker",
			Name:      "categorize_duration_seconds",
			Help:      "Categorization duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	categorizeInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docuintel",
			Subsystem: "worker",
			Name:      "categorize_in_flight",
			Help:      "Number of in-flight categorization tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docuintel",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between task enqueue and categorization start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(categorizeTotal, categorizeDuration, categorizeInFlight, queueLag)

	return &WorkerMetrics{
		registry:           registry,
		categorizeTotal:    categorizeTotal,
		categorizeDuration: categorizeDuration,
		categorizeInFlight: categorizeInFlight,
		queueLag:           queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartTask() {
	m.categorizeInFlight.Inc()
}

func (m *WorkerMetrics) FinishTask(service string, duration time.Duration, err error) {
	m.categorizeInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.categorizeTotal.WithLabelValues(service, status).Inc()
	m.categorizeDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
