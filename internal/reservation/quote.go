package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"car-rental/internal/catalog"
	"car-rental/internal/metrics"
	"car-rental/internal/rental"

	"github.com/google/uuid"
)

// QuoteManager issues non-binding quotes. Quoting only reads availability;
// the same car may be quoted to any number of clients and conflicts are
// settled when a quote is confirmed.
type QuoteManager struct {
	company string
	catalog *catalog.Catalog
	index   *AvailabilityIndex
	pricing *Pricing
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewQuoteManager creates a quote manager over the ledger's availability
func NewQuoteManager(company string, cat *catalog.Catalog, ledger *Ledger, m *metrics.Metrics) *QuoteManager {
	return &QuoteManager{
		company: company,
		catalog: cat,
		index:   ledger.Availability(),
		pricing: ledger.pricing,
		metrics: m,
		now:     ledger.now,
	}
}

// CreateQuote prices the constraints for clientName. It fails with
// rental.ErrNoCarAvailable when no car of the type is free in the region
// for the window at quote time.
func (q *QuoteManager) CreateQuote(ctx context.Context, constraints rental.ReservationConstraints, clientName string) (*rental.Quote, error) {
	if err := constraints.Validate(); err != nil {
		q.metrics.IncrementQuoteRejection("invalid_window")
		return nil, err
	}

	carType, err := q.catalog.CarType(constraints.CarType)
	if err != nil {
		q.metrics.IncrementQuoteRejection("unknown_car_type")
		return nil, err
	}

	free, err := q.index.FreeCars(carType.Name, constraints.Region, constraints.Start, constraints.End)
	if err != nil {
		if errors.Is(err, rental.ErrUnknownCarType) {
			q.metrics.IncrementQuoteRejection("unknown_car_type")
		}
		return nil, err
	}
	if len(free) == 0 {
		q.metrics.IncrementQuoteRejection("no_car_available")
		return nil, fmt.Errorf("%w: no %s car free in %q", rental.ErrNoCarAvailable, carType.Name, constraints.Region)
	}

	quote := &rental.Quote{
		ID:          uuid.NewString(),
		Company:     q.company,
		ClientName:  clientName,
		Constraints: constraints,
		Price:       q.pricing.Price(carType, constraints.Start, constraints.End),
		CreatedAt:   q.now(),
	}

	q.metrics.IncrementQuotesCreated(carType.Name)
	return quote, nil
}
