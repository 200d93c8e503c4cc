package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// DefaultRegistryPort is the port the name directory listens on
const DefaultRegistryPort = 12345

// Config holds the rental service settings read from the environment
type Config struct {
	Port         string
	CompanyName  string
	AdvertiseURL string

	RegistryAddr    string
	RegistryBackend string // memory or redis
	RedisURL        string

	StorageType           string // seed or dynamodb
	FleetSeedFile         string
	DynamoDBCarTypesTable string
	DynamoDBCarsTable     string
	AWSRegion             string

	KinesisStream string

	ShutdownTimeout time.Duration
	LogLevel        slog.Level
}

// FromEnv reads the configuration from environment variables
func FromEnv() (*Config, error) {
	port := getEnv("PORT", "8080")

	cfg := &Config{
		Port:                  port,
		CompanyName:           getEnv("COMPANY_NAME", "Hertz"),
		AdvertiseURL:          getEnv("ADVERTISE_URL", "http://localhost:"+port),
		RegistryAddr:          getEnv("REGISTRY_ADDR", fmt.Sprintf(":%d", DefaultRegistryPort)),
		RegistryBackend:       getEnv("REGISTRY_BACKEND", "memory"),
		RedisURL:              getEnv("REDIS_URL", ""),
		StorageType:           getEnv("STORAGE_TYPE", "seed"),
		FleetSeedFile:         getEnv("FLEET_SEED_FILE", "configs/hertz.yaml"),
		DynamoDBCarTypesTable: getEnv("DYNAMODB_CAR_TYPES_TABLE", "rental-car-types"),
		DynamoDBCarsTable:     getEnv("DYNAMODB_CARS_TABLE", "rental-cars"),
		AWSRegion:             getEnv("AWS_REGION", "us-west-2"),
		KinesisStream:         getEnv("KINESIS_RESERVATION_EVENTS_STREAM", ""),
		ShutdownTimeout:       getEnvDuration("SHUTDOWN_TIMEOUT", "10s"),
		LogLevel:              getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backends and missing backend settings
func (c *Config) Validate() error {
	switch c.RegistryBackend {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis registry backend")
		}
	default:
		return fmt.Errorf("unknown REGISTRY_BACKEND %q", c.RegistryBackend)
	}

	switch c.StorageType {
	case "seed":
		if c.FleetSeedFile == "" {
			return fmt.Errorf("FLEET_SEED_FILE is required for seed storage")
		}
	case "dynamodb":
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType)
	}

	if c.CompanyName == "" {
		return fmt.Errorf("COMPANY_NAME must not be empty")
	}
	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration gets duration from environment variable
func getEnvDuration(key, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration, using default", "provided", value, "default", defaultValue, "error", err)
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

// getEnvLevel gets a log level (debug, info, warn, error) from environment variable
func getEnvLevel(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(value))); err != nil {
		slog.Warn("Invalid log level, using default", "provided", value, "default", defaultValue)
		return defaultValue
	}
	return level
}
