// Package reservation is the reservation engine of a company: the ledger of
// confirmed reservations, the availability index over it and the quote
// manager.
//
// Locking discipline. The set of confirmed reservations is guarded by
// Ledger.mu, a sync.RWMutex. Availability queries and snapshots hold the
// read side for the duration of one computation. Confirmation runs its
// check-and-commit under the commit lock of the quoted car type and takes
// the write side of Ledger.mu only to insert the new reservation. Locks are
// always taken in that order (commit lock, then Ledger.mu) and a call holds
// at most one commit lock, so confirmations cannot deadlock, and
// confirmations for different car types never wait on each other's checks.
package reservation

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"car-rental/internal/catalog"
	"car-rental/internal/metrics"
	"car-rental/internal/rental"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Ledger is the single source of truth for confirmed reservations
type Ledger struct {
	company string
	catalog *catalog.Catalog
	pricing *Pricing
	metrics *metrics.Metrics
	index   *AvailabilityIndex
	now     func() time.Time

	// one weighted semaphore of size 1 per car type, fixed at construction
	commitLocks map[string]*semaphore.Weighted

	mu           sync.RWMutex
	reservations []rental.Reservation         // commit order
	byCar        map[int][]rental.Reservation // per car, sorted by start
}

// Option configures a Ledger
type Option func(*Ledger)

// WithPricing replaces the default pricing
func WithPricing(p *Pricing) Option {
	return func(l *Ledger) {
		l.pricing = p
	}
}

// WithMetrics records confirmation outcomes and lock waits
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

// WithClock sets the time source used for confirmation timestamps
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// NewLedger creates an empty ledger for the company's catalog
func NewLedger(company string, cat *catalog.Catalog, opts ...Option) *Ledger {
	l := &Ledger{
		company:     company,
		catalog:     cat,
		pricing:     DefaultPricing(),
		now:         time.Now,
		commitLocks: make(map[string]*semaphore.Weighted),
		byCar:       make(map[int][]rental.Reservation),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	for _, ct := range cat.ListCarTypes() {
		l.commitLocks[ct.Name] = semaphore.NewWeighted(1)
	}
	l.index = &AvailabilityIndex{catalog: cat, ledger: l}

	return l
}

// Availability returns the availability index reading this ledger
func (l *Ledger) Availability() *AvailabilityIndex {
	return l.index
}

// ConfirmQuote atomically re-checks the quote against the current
// reservations and books the free car with the lowest ID. It fails with
// rental.ErrQuoteNoLongerValid when the quote no longer describes a
// bookable request, including when every matching car was taken since the
// quote was issued. Waiting for the commit lock honours ctx.
func (l *Ledger) ConfirmQuote(ctx context.Context, quote *rental.Quote) (*rental.Reservation, error) {
	carType, err := l.revalidate(quote)
	if err != nil {
		l.metrics.IncrementConfirmation("no_longer_valid")
		return nil, err
	}
	c := quote.Constraints

	lock := l.commitLocks[carType.Name]
	waitStart := time.Now()
	if err := lock.Acquire(ctx, 1); err != nil {
		l.metrics.IncrementConfirmation("cancelled")
		return nil, fmt.Errorf("confirm quote %s: %w", quote.ID, err)
	}
	defer lock.Release(1)
	l.metrics.ObserveCommitLockWait(time.Since(waitStart))

	free, err := l.index.freeCars(carType.Name, c.Region, c.Start, c.End)
	if err != nil {
		l.metrics.IncrementConfirmation("no_longer_valid")
		return nil, fmt.Errorf("%w: %w", rental.ErrQuoteNoLongerValid, err)
	}
	if len(free) == 0 {
		l.metrics.IncrementConfirmation("no_longer_valid")
		return nil, fmt.Errorf("%w: no %s car free in %q for the quoted window", rental.ErrQuoteNoLongerValid, carType.Name, c.Region)
	}

	car := free[0]
	reservation := rental.Reservation{
		ID:          uuid.NewString(),
		QuoteID:     quote.ID,
		Company:     l.company,
		CarID:       car.ID,
		CarType:     car.CarType,
		Region:      car.Region,
		Renter:      quote.ClientName,
		Start:       c.Start,
		End:         c.End,
		Price:       l.pricing.Price(carType, c.Start, c.End),
		ConfirmedAt: l.now(),
	}

	if err := l.commit(reservation); err != nil {
		l.metrics.IncrementConfirmation("no_longer_valid")
		return nil, err
	}

	l.metrics.IncrementConfirmation("confirmed")
	return &reservation, nil
}

// Snapshot returns a point-in-time copy of all confirmed reservations in the
// order they were confirmed.
func (l *Ledger) Snapshot() []rental.Reservation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.reservations)
}

// Len returns the number of confirmed reservations
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.reservations)
}

func (l *Ledger) revalidate(quote *rental.Quote) (rental.CarType, error) {
	if quote == nil {
		return rental.CarType{}, fmt.Errorf("%w: missing quote", rental.ErrQuoteNoLongerValid)
	}
	if quote.Company != "" && quote.Company != l.company {
		return rental.CarType{}, fmt.Errorf("%w: quote was issued by %s", rental.ErrQuoteNoLongerValid, quote.Company)
	}
	if err := quote.Constraints.Validate(); err != nil {
		return rental.CarType{}, fmt.Errorf("%w: %w", rental.ErrQuoteNoLongerValid, err)
	}

	carType, err := l.catalog.CarType(quote.Constraints.CarType)
	if err != nil {
		return rental.CarType{}, fmt.Errorf("%w: %w", rental.ErrQuoteNoLongerValid, err)
	}
	return carType, nil
}

// commit inserts a reservation, keeping the car's list sorted by start. The
// overlap check is repeated under the write lock; with the commit lock held
// it cannot fail.
func (l *Ledger) commit(r rental.Reservation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.isFreeLocked(r.CarID, r.Start, r.End) {
		return fmt.Errorf("%w: car %d was booked concurrently", rental.ErrQuoteNoLongerValid, r.CarID)
	}

	list := l.byCar[r.CarID]
	i, _ := slices.BinarySearchFunc(list, r.Start, func(e rental.Reservation, t time.Time) int {
		return e.Start.Compare(t)
	})
	l.byCar[r.CarID] = slices.Insert(list, i, r)
	l.reservations = append(l.reservations, r)

	return nil
}
