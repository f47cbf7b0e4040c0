// Ashgrid - Wildfire Incident Analytics
// Copyright 2026 The Ashgrid Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/ashgrid/ashgrid

// Package config provides layered configuration for Ashgrid.
//
// Configuration is loaded with Koanf v2 from three layers, in order of
// precedence (highest last):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml)
//  3. Environment variables (HTTP_PORT, DUCKDB_PATH, LOG_LEVEL, ...)
//
// The resulting Config is validated once at startup and immutable afterwards,
// so it is safe for concurrent reads.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Cache     CacheConfig     `koanf:"cache"`
	Predictor PredictorConfig `koanf:"predictor"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`          // read/write timeout
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // graceful drain on SIGTERM
	Environment     string        `koanf:"environment"`      // development or production
}

// DatabaseConfig holds DuckDB settings. The incident store is bulk-loaded
// by an external ingestion job; this service only reads it.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
	ReadOnly  bool   `koanf:"read_only"`
}

// APIConfig holds pagination and sampling limits.
type APIConfig struct {
	DefaultPageSize    int     `koanf:"default_page_size"`
	MaxPageSize        int     `koanf:"max_page_size"`
	DefaultSampleSize  int     `koanf:"default_sample_size"` // correlation scatter sample
	MaxSampleSize      int     `koanf:"max_sample_size"`     // hard cap on requested samples
	AgencyLimitDefault int     `koanf:"agency_limit_default"`
	AgencyLimitMax     int     `koanf:"agency_limit_max"`
	YearDumpMinAcres   float64 `koanf:"year_dump_min_acres"` // size floor for the per-year dump
}

// CacheConfig holds the analytics response cache settings.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// PredictorConfig holds the cause-classifier model settings.
type PredictorConfig struct {
	ModelPath string `koanf:"model_path"`
}

// SecurityConfig holds CORS and rate-limiting settings.
// Authentication is intentionally absent: the service runs behind the
// deployment's own perimeter.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Address returns the host:port the HTTP server binds to.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database threads must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be >= API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.MaxSampleSize < c.API.DefaultSampleSize {
		return fmt.Errorf("API_MAX_SAMPLE_SIZE (%d) must be >= API_DEFAULT_SAMPLE_SIZE (%d)",
			c.API.MaxSampleSize, c.API.DefaultSampleSize)
	}
	if c.API.AgencyLimitMax < c.API.AgencyLimitDefault {
		return fmt.Errorf("AGENCY_LIMIT_MAX (%d) must be >= AGENCY_LIMIT_DEFAULT (%d)",
			c.API.AgencyLimitMax, c.API.AgencyLimitDefault)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be a valid level, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
