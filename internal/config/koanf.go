// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/pralina/internal/validation"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pralina/config.yaml",
	"/etc/pralina/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if present)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values for slice fields
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated env strings to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables map to "" and are ignored, so unrelated environment
// noise cannot leak into the configuration.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		"host":                      "server.host",
		"port":                      "server.port",
		"server_host":               "server.host",
		"server_port":               "server.port",
		"server_read_timeout":       "server.read_timeout",
		"server_write_timeout":      "server.write_timeout",
		"server_shutdown_timeout":   "server.shutdown_timeout",
		"rate_limit_reqs":           "server.rate_limit_reqs",
		"rate_limit_window":         "server.rate_limit_window",
		"cors_origins":              "server.cors_origins",
		"duckdb_path":               "database.path",
		"duckdb_threads":            "database.threads",
		"duckdb_max_memory":         "database.max_memory",
		"seed_demo_data":            "database.seed_demo_data",
		"log_level":                 "logging.level",
		"log_format":                "logging.format",
		"log_caller":                "logging.caller",
		"recommend_default_limit":   "recommend.default_limit",
		"recommend_max_limit":       "recommend.max_limit",
		"recommend_request_timeout": "recommend.request_timeout",
	}
	return mappings[strings.ToLower(key)]
}

// validateStruct runs tag-based validation over the config.
func validateStruct(c *Config) error {
	return validation.Struct(c)
}
