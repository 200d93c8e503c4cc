package reservation

import (
	"testing"
	"time"

	"car-rental/internal/catalog"
	"car-rental/internal/rental"
)

var jan1 = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func date(dayOfJanuary int) time.Time {
	return jan1.AddDate(0, 0, dayOfJanuary-1)
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New(
		[]rental.CarType{
			{Name: "economy", PricePerDay: 40, Seats: 4},
			{Name: "luxury", PricePerDay: 200, Seats: 5},
			{Name: "van", PricePerDay: 90, Seats: 8},
		},
		[]rental.Car{
			{ID: 1, CarType: "economy", Region: "north"},
			{ID: 2, CarType: "economy", Region: "north"},
			{ID: 3, CarType: "economy", Region: "south"},
			{ID: 4, CarType: "luxury", Region: "north"},
			{ID: 5, CarType: "van", Region: "south"},
			{ID: 6, CarType: "van", Region: "south"},
		},
	)
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	return c
}

func newTestEngine(t *testing.T) (*Ledger, *QuoteManager) {
	t.Helper()

	cat := newTestCatalog(t)
	ledger := NewLedger("Hertz", cat)
	return ledger, NewQuoteManager("Hertz", cat, ledger, nil)
}

func constraints(carType, region string, start, end time.Time) rental.ReservationConstraints {
	return rental.ReservationConstraints{Start: start, End: end, CarType: carType, Region: region}
}
