package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"car-rental/internal/company"
	"car-rental/internal/config"
	"car-rental/internal/rental"
	"car-rental/internal/registry"
)

const (
	localRegistryHost  = "localhost"
	remoteRegistryHost = "10.10.10.54"
)

func main() {
	remote := flag.Bool("remote", false, "resolve the company through the remote name directory")
	renter := flag.String("renter", "client-1", "name the trip is booked under")
	days := flag.Int("days", 3, "length of the rental in days")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	host := localRegistryHost
	if *remote {
		host = remoteRegistryHost
	}

	companyName := os.Getenv("COMPANY_NAME")
	if companyName == "" {
		companyName = "Hertz"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	names := registry.NewClient(host, config.DefaultRegistryPort)
	client, err := company.Lookup(ctx, names, companyName)
	if err != nil {
		slog.Error("Failed to resolve company", "company", companyName, "registry_host", host, "error", err)
		os.Exit(1)
	}

	if err := trip(ctx, client, *renter, *days); err != nil {
		slog.Error("Trip failed", "company", companyName, "renter", *renter, "error", err)
		os.Exit(1)
	}
}

// trip books the first car type that can still be quoted and confirmed for
// a rental starting tomorrow.
func trip(ctx context.Context, client rental.Company, renter string, days int) error {
	start := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	end := start.AddDate(0, 0, days)

	carTypes, err := client.GetAvailableCarTypes(ctx, start, end)
	if err != nil {
		return err
	}
	fmt.Printf("%s has %d car types available from %s to %s\n", client.Name(), len(carTypes), start.Format(time.DateOnly), end.Format(time.DateOnly))
	for _, ct := range carTypes {
		fmt.Printf("  %-10s %6.2f/day  seats=%d  regions=%v\n", ct.Name, ct.PricePerDay, ct.Seats, ct.Regions)
	}

	var reservation *rental.Reservation
	for _, ct := range carTypes {
		reservation, err = book(ctx, client, ct, renter, start, end)
		if err == nil {
			break
		}
		if !errors.Is(err, rental.ErrNoCarAvailable) && !errors.Is(err, rental.ErrQuoteNoLongerValid) {
			return err
		}
		slog.Info("Car type taken, trying the next one", "car_type", ct.Name, "error", err)
	}
	if reservation == nil {
		return fmt.Errorf("%w: nothing left to book", rental.ErrNoCarAvailable)
	}
	fmt.Printf("Reserved car %d (%s, %s) for %.2f\n", reservation.CarID, reservation.CarType, reservation.Region, reservation.Price)

	reservations, err := client.GetReservations(ctx)
	if err != nil {
		return err
	}
	mine := company.ReservationsByRenter(reservations, renter)
	fmt.Printf("%s holds %d reservations; %d %s cars are booked in total\n",
		renter, len(mine), company.CountByCarType(reservations, reservation.CarType), reservation.CarType)
	return nil
}

func book(ctx context.Context, client rental.Company, ct rental.CarType, renter string, start, end time.Time) (*rental.Reservation, error) {
	// No region: any branch with a free car will do
	const region = ""

	quote, err := client.CreateQuote(ctx, rental.ReservationConstraints{
		Start:   start,
		End:     end,
		CarType: ct.Name,
		Region:  region,
	}, renter)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Quote %s: %s for %.2f\n", quote.ID, ct.Name, quote.Price)

	return client.ConfirmQuote(ctx, quote)
}
