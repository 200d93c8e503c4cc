package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"car-rental/internal/catalog"
	"car-rental/internal/rental"
	"car-rental/internal/reservation"
)

// EventStreamer publishes quote and reservation events. Publishing is best
// effort and never fails the operation that triggered it.
type EventStreamer interface {
	StreamQuoteEvent(ctx context.Context, quote *rental.Quote)
	StreamReservationEvent(ctx context.Context, reservation *rental.Reservation)
}

// CompanyService is the public face of one rental company
type CompanyService struct {
	name     string
	catalog  *catalog.Catalog
	ledger   *reservation.Ledger
	quotes   *reservation.QuoteManager
	logger   *slog.Logger
	streamer EventStreamer
}

var _ rental.Company = (*CompanyService)(nil)

// NewCompanyService creates a company service over a catalog and its ledger
func NewCompanyService(name string, cat *catalog.Catalog, ledger *reservation.Ledger, quotes *reservation.QuoteManager, logger *slog.Logger) *CompanyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyService{
		name:    name,
		catalog: cat,
		ledger:  ledger,
		quotes:  quotes,
		logger:  logger.With("company", name),
	}
}

// SetEventStreamer sets the streamer for quote and reservation events
func (s *CompanyService) SetEventStreamer(streamer EventStreamer) {
	s.streamer = streamer
}

// Name returns the company name
func (s *CompanyService) Name() string {
	return s.name
}

// GetAvailableCarTypes returns the car types with at least one car free for
// the whole window in any region.
func (s *CompanyService) GetAvailableCarTypes(ctx context.Context, start, end time.Time) ([]rental.CarType, error) {
	if err := rental.ValidateWindow(start, end); err != nil {
		return nil, err
	}

	available := s.ledger.Availability().AvailableCarTypes(start, end)
	if available == nil {
		available = []rental.CarType{}
	}
	return available, nil
}

// CreateQuote prices a rental for clientName without reserving anything
func (s *CompanyService) CreateQuote(ctx context.Context, constraints rental.ReservationConstraints, clientName string) (*rental.Quote, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.catalog.CarType(constraints.CarType); err != nil {
		return nil, err
	}

	quote, err := s.quotes.CreateQuote(ctx, constraints, clientName)
	if err != nil {
		if errors.Is(err, rental.ErrNoCarAvailable) {
			s.logger.Info("No car available for quote",
				"car_type", constraints.CarType,
				"region", constraints.Region,
				"renter", clientName)
		}
		return nil, err
	}

	s.logger.Info("Quote created",
		"quote_id", quote.ID,
		"car_type", constraints.CarType,
		"region", constraints.Region,
		"renter", clientName,
		"price", quote.Price)

	if s.streamer != nil {
		s.streamer.StreamQuoteEvent(ctx, quote)
	}
	return quote, nil
}

// ConfirmQuote turns a quote into a reservation or fails without side effects
func (s *CompanyService) ConfirmQuote(ctx context.Context, quote *rental.Quote) (*rental.Reservation, error) {
	reservation, err := s.ledger.ConfirmQuote(ctx, quote)
	if err != nil {
		attrs := []any{"error", err}
		if quote != nil {
			attrs = append(attrs, "quote_id", quote.ID, "car_type", quote.Constraints.CarType, "renter", quote.ClientName)
		}
		s.logger.Warn("Quote confirmation failed", attrs...)
		return nil, err
	}

	s.logger.Info("Reservation confirmed",
		"reservation_id", reservation.ID,
		"quote_id", reservation.QuoteID,
		"car_type", reservation.CarType,
		"car_id", reservation.CarID,
		"renter", reservation.Renter)

	if s.streamer != nil {
		s.streamer.StreamReservationEvent(ctx, reservation)
	}
	return reservation, nil
}

// GetReservations returns every confirmed reservation, unfiltered
func (s *CompanyService) GetReservations(ctx context.Context) ([]rental.Reservation, error) {
	reservations := s.ledger.Snapshot()
	if reservations == nil {
		reservations = []rental.Reservation{}
	}
	return reservations, nil
}
