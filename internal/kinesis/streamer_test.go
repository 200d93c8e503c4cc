package kinesis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"car-rental/internal/rental"

	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockKinesisClient mocks the Kinesis client
type MockKinesisClient struct {
	mock.Mock
}

func (m *MockKinesisClient) PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*kinesis.PutRecordOutput), args.Error(1)
}

var (
	testStart = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	fixedNow  = time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
)

func newTestStreamer(client KinesisAPI) *Streamer {
	s := NewStreamer(client, "reservation-events")
	s.now = func() time.Time { return fixedNow }
	return s
}

func decodeEvent(t *testing.T, input *kinesis.PutRecordInput) ReservationEvent {
	t.Helper()
	var event ReservationEvent
	require.NoError(t, json.Unmarshal(input.Data, &event))
	return event
}

func TestStreamer_StreamQuoteEvent(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := newTestStreamer(mockClient)

	quote := &rental.Quote{
		ID:         "quote-1",
		Company:    "Hertz",
		ClientName: "alice",
		Constraints: rental.ReservationConstraints{
			Start: testStart, End: testEnd, CarType: "Compact", Region: "Brussels",
		},
		Price: 150,
	}

	var captured *kinesis.PutRecordInput
	mockClient.On("PutRecord", mock.Anything, mock.MatchedBy(func(input *kinesis.PutRecordInput) bool {
		return *input.StreamName == "reservation-events" && *input.PartitionKey == "Compact"
	})).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*kinesis.PutRecordInput)
	}).Return(&kinesis.PutRecordOutput{}, nil)

	streamer.StreamQuoteEvent(context.Background(), quote)

	mockClient.AssertExpectations(t)
	require.NotNil(t, captured)

	event := decodeEvent(t, captured)
	assert.Equal(t, EventQuoteCreated, event.EventType)
	assert.Equal(t, "quote-1", event.QuoteID)
	assert.Equal(t, "alice", event.Renter)
	assert.Equal(t, "Brussels", event.Region)
	assert.Nil(t, event.CarID)
	assert.Empty(t, event.ReservationID)
	assert.Equal(t, 150.0, event.Price)
	assert.True(t, fixedNow.Equal(event.Timestamp))
}

func TestStreamer_StreamReservationEvent(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := newTestStreamer(mockClient)

	reservation := &rental.Reservation{
		ID:      "res-1",
		QuoteID: "quote-1",
		Company: "Hertz",
		CarID:   3,
		CarType: "Sedan",
		Region:  "Leuven",
		Renter:  "bob",
		Start:   testStart,
		End:     testEnd,
		Price:   225,
	}

	var captured *kinesis.PutRecordInput
	mockClient.On("PutRecord", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*kinesis.PutRecordInput)
	}).Return(&kinesis.PutRecordOutput{}, nil)

	streamer.StreamReservationEvent(context.Background(), reservation)

	require.NotNil(t, captured)
	assert.Equal(t, "Sedan", *captured.PartitionKey)

	event := decodeEvent(t, captured)
	assert.Equal(t, EventReservationConfirmed, event.EventType)
	assert.Equal(t, "res-1", event.ReservationID)
	require.NotNil(t, event.CarID)
	assert.Equal(t, 3, *event.CarID)
	assert.True(t, testStart.Equal(event.Start))
	assert.True(t, testEnd.Equal(event.End))
}

func TestStreamer_PutRecordFailureIsSwallowed(t *testing.T) {
	mockClient := new(MockKinesisClient)
	streamer := newTestStreamer(mockClient)

	mockClient.On("PutRecord", mock.Anything, mock.Anything).
		Return((*kinesis.PutRecordOutput)(nil), errors.New("throttled"))

	assert.NotPanics(t, func() {
		streamer.StreamQuoteEvent(context.Background(), &rental.Quote{ID: "quote-2"})
	})
	mockClient.AssertNumberOfCalls(t, "PutRecord", 1)
}

func TestStreamer_Disabled(t *testing.T) {
	var nilStreamer *Streamer
	assert.NotPanics(t, func() {
		nilStreamer.StreamQuoteEvent(context.Background(), &rental.Quote{ID: "quote-3"})
	})

	disabled := NewStreamer(nil, "reservation-events")
	assert.NotPanics(t, func() {
		disabled.StreamReservationEvent(context.Background(), &rental.Reservation{ID: "res-3"})
	})
}
