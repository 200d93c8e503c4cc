package kinesis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"car-rental/internal/rental"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
)

// Event types published on the reservation events stream
const (
	EventQuoteCreated         = "quote_created"
	EventReservationConfirmed = "reservation_confirmed"
)

// KinesisAPI is the subset of the Kinesis client used by the streamer
type KinesisAPI interface {
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
}

type Streamer struct {
	client     KinesisAPI
	streamName string
	now        func() time.Time
}

type ReservationEvent struct {
	EventType     string    `json:"event_type"` // quote_created, reservation_confirmed
	Timestamp     time.Time `json:"timestamp"`
	Company       string    `json:"company"`
	QuoteID       string    `json:"quote_id"`
	ReservationID string    `json:"reservation_id,omitempty"`
	CarID         *int      `json:"car_id,omitempty"`
	CarType       string    `json:"car_type"`
	Region        string    `json:"region"`
	Renter        string    `json:"renter"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Price         float64   `json:"price"`
}

func NewStreamer(client KinesisAPI, streamName string) *Streamer {
	return &Streamer{
		client:     client,
		streamName: streamName,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// StreamQuoteEvent publishes a quote_created event
func (s *Streamer) StreamQuoteEvent(ctx context.Context, quote *rental.Quote) {
	s.put(ctx, quote.Constraints.CarType, ReservationEvent{
		EventType: EventQuoteCreated,
		Company:   quote.Company,
		QuoteID:   quote.ID,
		CarType:   quote.Constraints.CarType,
		Region:    quote.Constraints.Region,
		Renter:    quote.ClientName,
		Start:     quote.Constraints.Start,
		End:       quote.Constraints.End,
		Price:     quote.Price,
	})
}

// StreamReservationEvent publishes a reservation_confirmed event
func (s *Streamer) StreamReservationEvent(ctx context.Context, reservation *rental.Reservation) {
	carID := reservation.CarID
	s.put(ctx, reservation.CarType, ReservationEvent{
		EventType:     EventReservationConfirmed,
		Company:       reservation.Company,
		QuoteID:       reservation.QuoteID,
		ReservationID: reservation.ID,
		CarID:         &carID,
		CarType:       reservation.CarType,
		Region:        reservation.Region,
		Renter:        reservation.Renter,
		Start:         reservation.Start,
		End:           reservation.End,
		Price:         reservation.Price,
	})
}

// put partitions by car type so events for one type keep their order
func (s *Streamer) put(ctx context.Context, partitionKey string, event ReservationEvent) {
	if s == nil || s.client == nil {
		return // Kinesis not enabled
	}

	event.Timestamp = s.now()
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal reservation event", "quote_id", event.QuoteID, "error", err)
		return
	}

	_, err = s.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   &s.streamName,
		Data:         data,
		PartitionKey: &partitionKey,
	})

	if err != nil {
		slog.Error("Failed to stream reservation event", "quote_id", event.QuoteID, "event_type", event.EventType, "error", err)
	} else {
		slog.Debug("Streamed reservation event", "quote_id", event.QuoteID, "event_type", event.EventType)
	}
}
