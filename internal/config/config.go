package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read from the environment
// with an optional .env overlay.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	DBPath string `env:"DB_PATH" envDefault:"data/nutrios.db"`

	// SecretKey signs issued API tokens. AdminAPIKey is either the raw
	// admin key or its bcrypt hash ($2a$... prefix).
	SecretKey   string `env:"SECRET_KEY" envDefault:"change_me_in_production"`
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	TokenTTLMinutes int `env:"TOKEN_TTL_MINUTES" envDefault:"60"`

	// ReportingTZ is the canonical timezone for day and week bucketing.
	ReportingTZ string `env:"REPORTING_TZ" envDefault:"Europe/Moscow"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// ReportingLocation resolves ReportingTZ, falling back to UTC on an
// unknown zone name.
func (c Config) ReportingLocation() *time.Location {
	location, err := time.LoadLocation(c.ReportingTZ)
	if err != nil {
		return time.UTC
	}
	return location
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}
