package rental

import "time"

// CarType is a category of car offered by a company
type CarType struct {
	Name           string   `json:"name" dynamodbav:"name" yaml:"name"`
	Regions        []string `json:"regions" dynamodbav:"regions" yaml:"regions"`
	PricePerDay    float64  `json:"price_per_day" dynamodbav:"price_per_day" yaml:"price_per_day"`
	Seats          int      `json:"seats" dynamodbav:"seats" yaml:"seats"`
	TrunkSpace     float64  `json:"trunk_space" dynamodbav:"trunk_space" yaml:"trunk_space"`
	SmokingAllowed bool     `json:"smoking_allowed" dynamodbav:"smoking_allowed" yaml:"smoking_allowed"`
}

// OfferedIn reports whether the type has cars in the given region
func (c CarType) OfferedIn(region string) bool {
	for _, r := range c.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// Car is a single physical car in the fleet
type Car struct {
	ID      int    `json:"id" dynamodbav:"id"`
	CarType string `json:"car_type" dynamodbav:"car_type"`
	Region  string `json:"region" dynamodbav:"region"`
}

// ReservationConstraints describes what a client wants to rent.
// The window is half-open: [Start, End).
type ReservationConstraints struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	CarType string    `json:"car_type"`
	Region  string    `json:"region"`
}

// Validate checks the window ordering
func (c ReservationConstraints) Validate() error {
	return ValidateWindow(c.Start, c.End)
}

// Quote is a non-binding price offer. It reserves nothing.
type Quote struct {
	ID          string                 `json:"id"`
	Company     string                 `json:"company"`
	ClientName  string                 `json:"client_name"`
	Constraints ReservationConstraints `json:"constraints"`
	Price       float64                `json:"price"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Reservation is a confirmed allocation of one car to one renter
type Reservation struct {
	ID          string    `json:"id"`
	QuoteID     string    `json:"quote_id"`
	Company     string    `json:"company"`
	CarID       int       `json:"car_id"`
	CarType     string    `json:"car_type"`
	Region      string    `json:"region"`
	Renter      string    `json:"renter"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Price       float64   `json:"price"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Overlaps reports whether [start, end) intersects the reservation window
func (r Reservation) Overlaps(start, end time.Time) bool {
	return Overlaps(r.Start, r.End, start, end)
}

// Overlaps reports whether the half-open windows [s1, e1) and [s2, e2) intersect
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ValidateWindow returns ErrInvalidWindow unless start is strictly before end
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidWindow
	}
	return nil
}
