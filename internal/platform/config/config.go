// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and handed to components through
their constructors.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lotsawa/canon/internal/platform/apperr"
)

// # Storage Backends

const (
	// BackendMemory keeps every collection in process, seeded from fixtures.
	BackendMemory = "memory"
	// BackendPostgres stores the catalog in PostgreSQL.
	BackendPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Canon API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Persistence backend selection
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	SeedFixtures bool   `env:"SEED_FIXTURES" envDefault:"true"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), optional
	RedisURL     string        `env:"REDIS_URL"`
	TreeCacheTTL time.Duration `env:"TREE_CACHE_TTL" envDefault:"5m"`

	// Identity provider public key used to verify role tokens
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"canon.app"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and checks that
// the chosen collaborators are fully configured.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, apperr.Config("config: failed to parse environment variables", fmt.Errorf("config: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports inconsistent settings as a CONFIG_ERROR.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return apperr.Config("config: DATABASE_URL is required when STORE_BACKEND=postgres", nil)
		}
	default:
		return apperr.Config(fmt.Sprintf("config: unknown STORE_BACKEND %q", c.StoreBackend), nil)
	}

	if c.TreeCacheTTL <= 0 {
		return apperr.Config("config: TREE_CACHE_TTL must be positive", nil)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins as a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
