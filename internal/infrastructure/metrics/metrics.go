package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/vcledger/internal/domain"
)

// Metrics holds all Prometheus metrics. It implements usecase.Metrics.
type Metrics struct {
	// Ledger metrics
	TransactionsPosted *prometheus.CounterVec
	PostingDuration    *prometheus.HistogramVec
	OperationFailures  *prometheus.CounterVec
	AuditDrifts        prometheus.Counter
	CacheLookups       *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	PublishFailures prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates and registers all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Ledger metrics
		TransactionsPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcledger_transactions_posted_total",
				Help: "Total number of ledger transactions committed by kind",
			},
			[]string{"kind"},
		),
		PostingDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vcledger_posting_duration_seconds",
				Help:    "Duration of the store transaction that posted a ledger transaction",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		OperationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcledger_operation_failures_total",
				Help: "Total number of failed ledger operations by error class",
			},
			[]string{"operation", "class"},
		),
		AuditDrifts: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcledger_audit_drifts_total",
			Help: "Total number of account balances found out of line with their entries",
		}),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcledger_balance_cache_lookups_total",
				Help: "Balance cache lookups by result",
			},
			[]string{"result"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),

		// Outbox metrics
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcledger_outbox_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vcledger_outbox_publish_failures_total",
			Help: "Total outbox events that failed to publish",
		}),
	}
}

// TransactionPosted records a committed ledger transaction.
func (m *Metrics) TransactionPosted(kind domain.TransactionKind, elapsed time.Duration) {
	m.TransactionsPosted.WithLabelValues(string(kind)).Inc()
	m.PostingDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// OperationFailed records a failed ledger operation.
func (m *Metrics) OperationFailed(operation string, class domain.ErrorClass) {
	m.OperationFailures.WithLabelValues(operation, string(class)).Inc()
}

// DriftDetected records drifted balances found by an audit.
func (m *Metrics) DriftDetected(count int) {
	m.AuditDrifts.Add(float64(count))
}

// CacheLookup records a balance cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RateLimited records one rejected request.
func (m *Metrics) RateLimited() {
	m.RateLimitHits.Inc()
}

// EventPublished records one published outbox event.
func (m *Metrics) EventPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// PublishFailed records one outbox event that could not be published.
func (m *Metrics) PublishFailed() {
	m.PublishFailures.Inc()
}
