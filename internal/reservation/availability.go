package reservation

import (
	"sort"
	"time"

	"car-rental/internal/catalog"
	"car-rental/internal/rental"
)

// AvailabilityIndex answers which cars are free for a window. Every query
// reads the ledger under a single read lock, so it sees one consistent set
// of confirmed reservations.
type AvailabilityIndex struct {
	catalog *catalog.Catalog
	ledger  *Ledger
}

// FreeCars returns the IDs, ascending, of the cars of carType that have no
// confirmed reservation overlapping [start, end). A non-empty region
// restricts the result to cars stationed there. Nothing free is an empty
// result, not an error.
func (a *AvailabilityIndex) FreeCars(carType, region string, start, end time.Time) ([]int, error) {
	cars, err := a.freeCars(carType, region, start, end)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(cars))
	for _, car := range cars {
		ids = append(ids, car.ID)
	}
	return ids, nil
}

// AvailableCarTypes returns the car types with at least one free car in any
// region for [start, end), sorted by name.
func (a *AvailabilityIndex) AvailableCarTypes(start, end time.Time) []rental.CarType {
	carTypes := a.catalog.ListCarTypes()

	a.ledger.mu.RLock()
	defer a.ledger.mu.RUnlock()

	var result []rental.CarType
	for _, ct := range carTypes {
		cars, err := a.catalog.CarsOf(ct.Name)
		if err != nil {
			continue
		}
		for _, car := range cars {
			if a.ledger.isFreeLocked(car.ID, start, end) {
				result = append(result, ct)
				break
			}
		}
	}
	return result
}

func (a *AvailabilityIndex) freeCars(carType, region string, start, end time.Time) ([]rental.Car, error) {
	cars, err := a.catalog.CarsOf(carType)
	if err != nil {
		return nil, err
	}

	a.ledger.mu.RLock()
	defer a.ledger.mu.RUnlock()

	free := make([]rental.Car, 0, len(cars))
	for _, car := range cars {
		if region != "" && car.Region != region {
			continue
		}
		if a.ledger.isFreeLocked(car.ID, start, end) {
			free = append(free, car)
		}
	}
	return free, nil
}

// isFreeLocked reports whether a car has no reservation overlapping
// [start, end). Reservations per car are disjoint and sorted by start, so
// their ends are sorted too; only the first one ending after start can
// overlap. Callers hold ledger.mu.
func (l *Ledger) isFreeLocked(carID int, start, end time.Time) bool {
	list := l.byCar[carID]
	i := sort.Search(len(list), func(i int) bool { return list[i].End.After(start) })
	return i == len(list) || !list[i].Overlaps(start, end)
}
