package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementQuotesCreated("Compact")
	m.IncrementQuotesCreated("Compact")
	m.IncrementQuoteRejection("no_car_available")
	m.IncrementConfirmation("confirmed")
	m.ObserveCommitLockWait(time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuotesCreated.WithLabelValues("Compact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuoteRejections.WithLabelValues("no_car_available")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Confirmations.WithLabelValues("confirmed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CommitLockWait))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncrementQuotesCreated("Compact")
		m.IncrementQuoteRejection("invalid_window")
		m.IncrementConfirmation("confirmed")
		m.ObserveCommitLockWait(time.Second)
	})
}
