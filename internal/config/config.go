// Package config loads process settings from the environment
package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

// Config is the process configuration. Cobra flags may override any field
// after Load.
type Config struct {
	Port       int           `env:"COC_API_PORT" envDefault:"50051"`
	SessionTTL time.Duration `env:"COC_API_SESSION_TTL" envDefault:"15m"`

	// Seed selects a deterministic roller; zero keeps the toolkit's crypto roller
	Seed int64 `env:"COC_API_SEED" envDefault:"0"`

	LogLevel slog.Level `env:"COC_API_LOG_LEVEL" envDefault:"INFO"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges of every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("port", c.Port, 1, 65535, vb)
	if c.SessionTTL <= 0 {
		vb.Field("session_ttl", "must be positive")
	}

	return vb.Build()
}

// Deterministic reports whether rolls come from a seeded roller
func (c *Config) Deterministic() bool {
	return c.Seed != 0
}

// NewLogger builds the process logger writing text records to w
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
