package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	httpErrorsTotal        *prometheus.CounterVec
	storageOpsTotal        *prometheus.CounterVec
	notificationsTotal     *prometheus.CounterVec
	assistantRepliesTotal  *prometheus.CounterVec
	streamClientsActiveNum prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konexa_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "konexa_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konexa_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		storageOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konexa_storage_ops_total",
			Help: "Key-value store operations by kind and outcome.",
		}, []string{"op", "outcome"})

		notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konexa_notifications_published_total",
			Help: "Notifications published to subscribers by type.",
		}, []string{"type"})

		assistantRepliesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "konexa_assistant_replies_total",
			Help: "Assistant replies generated by matched topic.",
		}, []string{"topic"})

		streamClientsActiveNum = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "konexa_stream_clients_active",
			Help: "Currently connected notification stream clients.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			storageOpsTotal,
			notificationsTotal,
			assistantRepliesTotal,
			streamClientsActiveNum,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// StorageOps exposes the counter for key-value store operations.
func StorageOps() *prometheus.CounterVec {
	RegisterMetrics()
	return storageOpsTotal
}

// NotificationsPublished exposes the counter for published notifications.
func NotificationsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsTotal
}

// AssistantReplies exposes the counter for generated assistant replies.
func AssistantReplies() *prometheus.CounterVec {
	RegisterMetrics()
	return assistantRepliesTotal
}

// StreamClientsActive exposes the gauge of connected stream clients.
func StreamClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return streamClientsActiveNum
}
