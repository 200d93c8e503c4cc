package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"car-rental/internal/rental"

	"gopkg.in/yaml.v3"
)

// Seed is the fleet description read from a YAML file
type Seed struct {
	Company  string        `yaml:"company"`
	CarTypes []SeedCarType `yaml:"car_types"`
}

// SeedCarType is a car type plus how many cars of it sit in each region
type SeedCarType struct {
	rental.CarType `yaml:",inline"`
	Fleet          []SeedFleet `yaml:"fleet"`
}

// SeedFleet is a per-region car count
type SeedFleet struct {
	Region string `yaml:"region"`
	Count  int    `yaml:"count"`
}

// LoadSeedFile reads a fleet seed from disk
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return LoadSeed(f)
}

// LoadSeed decodes a fleet seed
func LoadSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for _, ct := range seed.CarTypes {
		if ct.Name == "" {
			return nil, fmt.Errorf("seed car type without a name")
		}
		if ct.PricePerDay < 0 {
			return nil, fmt.Errorf("car type %s has a negative price", ct.Name)
		}
		for _, f := range ct.Fleet {
			if f.Region == "" || f.Count < 0 {
				return nil, fmt.Errorf("car type %s has an invalid fleet entry", ct.Name)
			}
		}
	}

	return &seed, nil
}

// Populate writes the seed into storage. Car IDs are assigned from 1 in file
// order so the same file always yields the same fleet.
func (s *Seed) Populate(ctx context.Context, inventory InventoryStorage) error {
	nextID := 1
	for _, ct := range s.CarTypes {
		carType := ct.CarType
		carType.Regions = append([]string(nil), ct.Regions...)
		for _, f := range ct.Fleet {
			if !carType.OfferedIn(f.Region) {
				carType.Regions = append(carType.Regions, f.Region)
			}
		}

		if err := inventory.CreateCarType(ctx, &carType); err != nil {
			return err
		}

		for _, f := range ct.Fleet {
			for i := 0; i < f.Count; i++ {
				car := &rental.Car{ID: nextID, CarType: carType.Name, Region: f.Region}
				if err := inventory.CreateCar(ctx, car); err != nil {
					return err
				}
				nextID++
			}
		}
	}

	return nil
}
