// Package catalog holds a company's car types and the cars that belong to
// them. A Catalog is built once at startup and never changes afterwards, so
// it is safe for concurrent reads without locking.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"car-rental/internal/rental"
	"car-rental/internal/storage"

	"golang.org/x/sync/errgroup"
)

// Catalog is the static car type inventory of one company
type Catalog struct {
	carTypes map[string]rental.CarType
	cars     map[string][]rental.Car // by car type, ascending ID
	names    []string
}

// New validates the inventory and builds a catalog from it. Each type's
// regions are extended with the regions its cars are stationed in.
func New(carTypes []rental.CarType, cars []rental.Car) (*Catalog, error) {
	c := &Catalog{
		carTypes: make(map[string]rental.CarType, len(carTypes)),
		cars:     make(map[string][]rental.Car, len(carTypes)),
	}

	for _, ct := range carTypes {
		if ct.Name == "" {
			return nil, fmt.Errorf("car type without a name")
		}
		if _, exists := c.carTypes[ct.Name]; exists {
			return nil, fmt.Errorf("duplicate car type %s", ct.Name)
		}
		ct.Regions = append([]string(nil), ct.Regions...)
		c.carTypes[ct.Name] = ct
		c.names = append(c.names, ct.Name)
	}

	seen := make(map[int]bool, len(cars))
	for _, car := range cars {
		ct, ok := c.carTypes[car.CarType]
		if !ok {
			return nil, fmt.Errorf("car %d: %w: %s", car.ID, rental.ErrUnknownCarType, car.CarType)
		}
		if seen[car.ID] {
			return nil, fmt.Errorf("duplicate car id %d", car.ID)
		}
		seen[car.ID] = true

		if car.Region != "" && !ct.OfferedIn(car.Region) {
			ct.Regions = append(ct.Regions, car.Region)
			c.carTypes[ct.Name] = ct
		}
		c.cars[car.CarType] = append(c.cars[car.CarType], car)
	}

	for name := range c.cars {
		list := c.cars[name]
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	sort.Strings(c.names)

	return c, nil
}

// Load reads the inventory from storage and builds a catalog
func Load(ctx context.Context, inventory storage.InventoryStorage) (*Catalog, error) {
	var (
		carTypes []*rental.CarType
		cars     []*rental.Car
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		carTypes, err = inventory.GetAllCarTypes(ctx)
		if err != nil {
			return fmt.Errorf("load car types: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cars, err = inventory.GetAllCars(ctx)
		if err != nil {
			return fmt.Errorf("load cars: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	types := make([]rental.CarType, 0, len(carTypes))
	for _, ct := range carTypes {
		types = append(types, *ct)
	}
	fleet := make([]rental.Car, 0, len(cars))
	for _, car := range cars {
		fleet = append(fleet, *car)
	}

	return New(types, fleet)
}

// ListCarTypes returns every car type, sorted by name
func (c *Catalog) ListCarTypes() []rental.CarType {
	result := make([]rental.CarType, 0, len(c.names))
	for _, name := range c.names {
		result = append(result, copyCarType(c.carTypes[name]))
	}
	return result
}

// CarType looks up a single car type by name
func (c *Catalog) CarType(name string) (rental.CarType, error) {
	ct, ok := c.carTypes[name]
	if !ok {
		return rental.CarType{}, fmt.Errorf("%w: %s", rental.ErrUnknownCarType, name)
	}
	return copyCarType(ct), nil
}

// CarsOf returns the cars of a type in ascending ID order
func (c *Catalog) CarsOf(name string) ([]rental.Car, error) {
	if _, ok := c.carTypes[name]; !ok {
		return nil, fmt.Errorf("%w: %s", rental.ErrUnknownCarType, name)
	}
	return append([]rental.Car(nil), c.cars[name]...), nil
}

// Size returns the number of cars in the catalog
func (c *Catalog) Size() int {
	n := 0
	for _, cars := range c.cars {
		n += len(cars)
	}
	return n
}

func copyCarType(ct rental.CarType) rental.CarType {
	ct.Regions = append([]string(nil), ct.Regions...)
	return ct
}
