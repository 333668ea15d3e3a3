package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики сервиса: HTTP, хранилище, circuit breaker, модерация, оценки, фоновые задачи.
// Регистрируются в default registry и отдаются через /metrics.

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "museworks_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Storage
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "museworks_storage_operation_duration_seconds",
			Help:    "Duration of guarded storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_storage_errors_total",
			Help: "Total number of storage failures surfaced as StorageUnavailable",
		},
		[]string{"operation", "error_type"}, // "timeout", "breaker_open", "driver"
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "museworks_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_circuit_breaker_requests_total",
			Help: "Requests passing through the circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Domain
	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_moderation_decisions_total",
			Help: "Moderation decisions applied to works",
		},
		[]string{"decision", "outcome"}, // outcome: "applied", "failed"
	)

	ReviewRecordsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_review_records_total",
			Help: "Review ledger records appended",
		},
		[]string{"action"},
	)

	RatingWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_rating_writes_total",
			Help: "Rating upserts and deletions",
		},
		[]string{"target_type", "operation"}, // operation: "upsert", "delete"
	)

	RelatednessCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "museworks_relatedness_candidates",
			Help:    "Number of candidate works scored per relatedness request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// Background
	CollectionsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "museworks_collections_closed_total",
			Help: "Collections closed by the deadline sweeper",
		},
	)

	EmailNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "museworks_email_notifications_total",
			Help: "Review decision emails by outcome",
		},
		[]string{"outcome"}, // "sent", "failed", "skipped"
	)
)

// RecordHTTPRequest фиксирует длительность и итог HTTP запроса
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	s := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, s).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, s).Inc()
}

// RecordStorageOperation фиксирует длительность операции с хранилищем
func RecordStorageOperation(operation string, duration time.Duration) {
	StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
