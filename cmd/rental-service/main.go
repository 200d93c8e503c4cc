package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"car-rental/internal/catalog"
	"car-rental/internal/config"
	"car-rental/internal/handlers"
	"car-rental/internal/kinesis"
	"car-rental/internal/metrics"
	"car-rental/internal/registry"
	"car-rental/internal/reservation"
	"car-rental/internal/service"
	"car-rental/internal/storage"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	kinesisService "github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured JSON logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Rental Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// Initialize inventory storage based on configuration
	inventory, err := newInventory(ctx, cfg)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(ctx, inventory)
	if err != nil {
		return err
	}
	slog.Info("Fleet loaded", "car_types", len(cat.ListCarTypes()), "cars", cat.Size())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize the reservation engine and company service
	ledger := reservation.NewLedger(cfg.CompanyName, cat, reservation.WithMetrics(m))
	quotes := reservation.NewQuoteManager(cfg.CompanyName, cat, ledger, m)
	companyService := service.NewCompanyService(cfg.CompanyName, cat, ledger, quotes, slog.Default())

	// Initialize Kinesis streamer if stream name is provided
	if cfg.KinesisStream != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			slog.Warn("Failed to load AWS config for Kinesis", "error", err)
		} else {
			streamer := kinesis.NewStreamer(kinesisService.NewFromConfig(awsCfg), cfg.KinesisStream)
			companyService.SetEventStreamer(streamer)
			slog.Info("Kinesis reservation event streaming enabled", "stream", cfg.KinesisStream)
		}
	}

	names, err := newRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	companyRouter := mux.NewRouter()
	handlers.NewHTTPHandler(companyService, reg).RegisterRoutes(companyRouter)
	companyRouter.Use(corsMiddleware)

	directoryRouter := mux.NewRouter()
	registry.NewHandler(names).RegisterRoutes(directoryRouter)

	companyServer := &http.Server{Addr: ":" + cfg.Port, Handler: companyRouter}
	directoryServer := &http.Server{Addr: cfg.RegistryAddr, Handler: directoryRouter}

	if err := names.Bind(ctx, cfg.CompanyName, cfg.AdvertiseURL); err != nil {
		return err
	}
	slog.Info("Company bound in name directory", "company", cfg.CompanyName, "url", cfg.AdvertiseURL)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Rental Service starting", "company", cfg.CompanyName, "port", cfg.Port)
		return serve(companyServer)
	})

	g.Go(func() error {
		slog.Info("Name directory starting", "addr", cfg.RegistryAddr, "backend", cfg.RegistryBackend)
		return serve(directoryServer)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Rental Service shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := names.Unbind(shutdownCtx, cfg.CompanyName); err != nil {
			slog.Warn("Failed to unbind company", "company", cfg.CompanyName, "error", err)
		}

		return errors.Join(
			companyServer.Shutdown(shutdownCtx),
			directoryServer.Shutdown(shutdownCtx),
		)
	})

	return g.Wait()
}

func newInventory(ctx context.Context, cfg *config.Config) (storage.InventoryStorage, error) {
	switch cfg.StorageType {
	case "dynamodb":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, err
		}

		inventory := storage.NewDynamoDBInventoryStorage(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBCarTypesTable, cfg.DynamoDBCarsTable)
		slog.Info("Using DynamoDB inventory", "car_types_table", cfg.DynamoDBCarTypesTable, "cars_table", cfg.DynamoDBCarsTable)
		return inventory, nil
	default:
		seed, err := storage.LoadSeedFile(cfg.FleetSeedFile)
		if err != nil {
			return nil, err
		}
		if seed.Company != "" && seed.Company != cfg.CompanyName {
			slog.Warn("Seed file describes another company", "seed_company", seed.Company, "company", cfg.CompanyName)
		}

		inventory := storage.NewMemoryInventoryStorage()
		if err := seed.Populate(ctx, inventory); err != nil {
			return nil, err
		}
		slog.Info("Using in-memory inventory", "seed_file", cfg.FleetSeedFile)
		return inventory, nil
	}
}

func newRegistry(ctx context.Context, cfg *config.Config) (registry.Registry, error) {
	if cfg.RegistryBackend == "redis" {
		client, err := registry.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return registry.NewRedisRegistry(client), nil
	}
	return registry.NewMemoryRegistry(), nil
}

func serve(server *http.Server) error {
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// corsMiddleware adds CORS headers for frontend access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
