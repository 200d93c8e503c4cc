package storage

import (
	"context"

	"car-rental/internal/rental"
)

// InventoryStorage defines the interface for fleet inventory operations
type InventoryStorage interface {
	// CreateCarType registers a new car type
	CreateCarType(ctx context.Context, carType *rental.CarType) error

	// CreateCar adds a car to the fleet
	CreateCar(ctx context.Context, car *rental.Car) error

	// GetAllCarTypes returns every registered car type
	GetAllCarTypes(ctx context.Context) ([]*rental.CarType, error)

	// GetAllCars returns every car in the fleet
	GetAllCars(ctx context.Context) ([]*rental.Car, error)
}
