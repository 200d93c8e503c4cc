package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for quoting and reservation confirmation.
// All methods are safe to call on a nil receiver.
type Metrics struct {
	// Quotes issued by car type
	QuotesCreated *prometheus.CounterVec

	// Quote requests refused, by reason
	QuoteRejections *prometheus.CounterVec

	// Confirmation attempts by outcome
	Confirmations *prometheus.CounterVec

	// Time spent waiting for a car type's commit lock
	CommitLockWait prometheus.Histogram
}

// New creates the metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QuotesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "car_rental_quotes_created_total",
			Help: "Total quotes issued by car type",
		}, []string{"car_type"}),

		QuoteRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "car_rental_quote_rejections_total",
			Help: "Total quote requests refused by reason",
		}, []string{"reason"}), // reason: "invalid_window", "unknown_car_type", "no_car_available"

		Confirmations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "car_rental_confirmations_total",
			Help: "Total quote confirmations by outcome",
		}, []string{"outcome"}), // outcome: "confirmed", "no_longer_valid", "cancelled"

		CommitLockWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "car_rental_commit_lock_wait_seconds",
			Help:    "Time spent waiting for the per car type commit lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

// IncrementQuotesCreated records an issued quote.
func (m *Metrics) IncrementQuotesCreated(carType string) {
	if m != nil {
		m.QuotesCreated.WithLabelValues(carType).Inc()
	}
}

// IncrementQuoteRejection records a refused quote request.
func (m *Metrics) IncrementQuoteRejection(reason string) {
	if m != nil {
		m.QuoteRejections.WithLabelValues(reason).Inc()
	}
}

// IncrementConfirmation records the outcome of a confirmation attempt.
func (m *Metrics) IncrementConfirmation(outcome string) {
	if m != nil {
		m.Confirmations.WithLabelValues(outcome).Inc()
	}
}

// ObserveCommitLockWait records how long a confirmation waited for its lock.
func (m *Metrics) ObserveCommitLockWait(d time.Duration) {
	if m != nil {
		m.CommitLockWait.Observe(d.Seconds())
	}
}
