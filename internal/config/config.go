// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var drivers = []string{DriverMemory, DriverFile, DriverSQLite, DriverPostgres}

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// StorageDriver selects where client state is persisted:
	// memory, file, sqlite or postgres.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`

	// DataDir is the directory used by the file and sqlite drivers.
	DataDir string `env:"DATA_DIR" envDefault:".chronotours"`

	// DatabaseURL is the Postgres connection string. Required for the
	// postgres driver only.
	DatabaseURL string `env:"DATABASE_URL"`

	// SimulatedLatency is the artificial delay of every remote call.
	SimulatedLatency time.Duration `env:"SIMULATED_LATENCY" envDefault:"800ms"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSOrigins = trimEntries(cfg.CORSOrigins)
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if !slices.Contains(drivers, cfg.StorageDriver) {
		return Config{}, fmt.Errorf("STORAGE_DRIVER %q is not one of %s", cfg.StorageDriver, strings.Join(drivers, ", "))
	}
	if cfg.SimulatedLatency < 0 {
		return Config{}, fmt.Errorf("SIMULATED_LATENCY must not be negative")
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	var missing []string
	if cfg.StorageDriver == DriverPostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// trimEntries trims each entry and drops the empty ones.
func trimEntries(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
