package reservation

import (
	"time"

	"car-rental/internal/rental"
)

const day = 24 * time.Hour

// Pricing holds pricing parameters
type Pricing struct {
	// Shortest billable rental, in days
	MinimumDays int
}

// DefaultPricing bills per started day with a one-day minimum
func DefaultPricing() *Pricing {
	return &Pricing{
		MinimumDays: 1,
	}
}

// Days returns the number of billable days in [start, end)
func (p *Pricing) Days(start, end time.Time) int {
	d := end.Sub(start)
	days := int((d + day - 1) / day)
	if days < p.MinimumDays {
		days = p.MinimumDays
	}
	return days
}

// Price computes the rental price of a car type for the window
func (p *Pricing) Price(carType rental.CarType, start, end time.Time) float64 {
	return carType.PricePerDay * float64(p.Days(start, end))
}
