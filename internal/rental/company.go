package rental

import (
	"context"
	"time"
)

// Company is the contract of a car rental company, whether reached in-process
// or through a remote handle.
type Company interface {
	// Name returns the name the company is published under
	Name() string

	// GetAvailableCarTypes returns the car types with at least one free car in [start, end)
	GetAvailableCarTypes(ctx context.Context, start, end time.Time) ([]CarType, error)

	// CreateQuote issues a non-binding quote
	CreateQuote(ctx context.Context, constraints ReservationConstraints, clientName string) (*Quote, error)

	// ConfirmQuote turns a quote into a reservation, or fails with ErrQuoteNoLongerValid
	ConfirmQuote(ctx context.Context, quote *Quote) (*Reservation, error)

	// GetReservations returns every confirmed reservation, unfiltered
	GetReservations(ctx context.Context) ([]Reservation, error)
}
