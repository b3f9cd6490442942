// Package config loads server configuration from the environment and
// optional YAML security policy files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"content-calendar/internal/common/pagination"
)

// ServerConfig holds the API server settings loaded from environment
// variables. Validation happens once at startup; a misconfigured server
// refuses to boot rather than run with surprising values.
type ServerConfig struct {
	// Addr is the listen address for the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// Environment selects runtime behavior (log format, debug endpoints).
	Environment string `env:"APP_ENV" envDefault:"development" validate:"oneof=development staging production"`

	// LogLevel controls the slog level.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// RequestTimeout bounds how long a single request may run.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown on SIGTERM.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`

	// ReadHeaderTimeout guards against slowloris-style clients.
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s" validate:"gt=0"`

	// MaxBodyBytes caps request body sizes.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576" validate:"gt=0"`

	// PageSizeDefault and PageSizeMax drive list pagination.
	PageSizeDefault int `env:"PAGE_SIZE_DEFAULT" envDefault:"20" validate:"gt=0"`
	PageSizeMax     int `env:"PAGE_SIZE_MAX" envDefault:"100" validate:"gtefield=PageSizeDefault"`

	// Version is reported by the health endpoint; usually injected at
	// build time through the environment.
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

// LoadServerConfig parses and validates server configuration from the
// environment.
func LoadServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse server config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate server config: %w", err)
	}
	return &cfg, nil
}

// PaginationConfig exposes the page size settings in the form the list
// endpoints consume. ServerConfig is the only source of these values.
func (c *ServerConfig) PaginationConfig() pagination.Config {
	return pagination.Config{
		DefaultPage:  1,
		DefaultLimit: c.PageSizeDefault,
		MaxLimit:     c.PageSizeMax,
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}
