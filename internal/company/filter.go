package company

import "car-rental/internal/rental"

// ReservationsByRenter keeps the reservations held by renter
func ReservationsByRenter(reservations []rental.Reservation, renter string) []rental.Reservation {
	var result []rental.Reservation
	for _, r := range reservations {
		if r.Renter == renter {
			result = append(result, r)
		}
	}
	return result
}

// CountByCarType counts the reservations of carType
func CountByCarType(reservations []rental.Reservation, carType string) int {
	count := 0
	for _, r := range reservations {
		if r.CarType == carType {
			count++
		}
	}
	return count
}
