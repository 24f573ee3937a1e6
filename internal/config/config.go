// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

// Package config loads and validates the application configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
//
//  1. Environment variables (SERVER_PORT, LOG_LEVEL, DUCKDB_PATH, ...)
//  2. Optional YAML config file (config.yaml, CONFIG_PATH override)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow.
	// Zero disables rate limiting.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" keeps everything
	// in-process, which the test suite relies on.
	Path string `koanf:"path" validate:"required"`

	// Threads limits DuckDB worker threads. Zero means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// MaxMemory caps DuckDB memory usage, e.g. "512MB".
	MaxMemory string `koanf:"max_memory"`

	// SeedDemoData loads the demo catalog on first start.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	// DefaultLimit is the result count when a request gives none.
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`

	// MaxLimit bounds the per-request limit parameter.
	MaxLimit int `koanf:"max_limit" validate:"min=1"`

	// RequestTimeout bounds a single recommendation computation.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// Validate checks invariants that struct tags cannot express.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("recommend.max_limit (%d) must be >= recommend.default_limit (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}
	if c.Server.RateLimitReqs > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}

// defaultConfig returns a Config with all default values.
// Defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8880,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Path:         "/data/pralina.duckdb",
			Threads:      0,
			MaxMemory:    "512MB",
			SeedDemoData: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit:   5,
			MaxLimit:       50,
			RequestTimeout: 10 * time.Second,
		},
	}
}
