package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"car-rental/internal/rental"
)

// MemoryInventoryStorage implements InventoryStorage using in-memory maps
type MemoryInventoryStorage struct {
	carTypes map[string]*rental.CarType
	cars     map[int]*rental.Car
	mu       sync.RWMutex
}

// NewMemoryInventoryStorage creates a new in-memory storage instance
func NewMemoryInventoryStorage() *MemoryInventoryStorage {
	return &MemoryInventoryStorage{
		carTypes: make(map[string]*rental.CarType),
		cars:     make(map[int]*rental.Car),
	}
}

func (m *MemoryInventoryStorage) CreateCarType(ctx context.Context, carType *rental.CarType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.carTypes[carType.Name]; exists {
		return fmt.Errorf("car type %s already exists", carType.Name)
	}

	stored := *carType
	stored.Regions = append([]string(nil), carType.Regions...)
	m.carTypes[carType.Name] = &stored
	return nil
}

func (m *MemoryInventoryStorage) CreateCar(ctx context.Context, car *rental.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.cars[car.ID]; exists {
		return fmt.Errorf("car %d already exists", car.ID)
	}

	stored := *car
	m.cars[car.ID] = &stored
	return nil
}

func (m *MemoryInventoryStorage) GetAllCarTypes(ctx context.Context) ([]*rental.CarType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*rental.CarType, 0, len(m.carTypes))
	for _, carType := range m.carTypes {
		c := *carType
		c.Regions = append([]string(nil), carType.Regions...)
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MemoryInventoryStorage) GetAllCars(ctx context.Context) ([]*rental.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*rental.Car, 0, len(m.cars))
	for _, car := range m.cars {
		c := *car
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
