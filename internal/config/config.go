// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package config holds all application configuration, loaded in layers via
// Koanf v2: built-in defaults, then an optional YAML config file, then
// environment variables (highest priority). Config is immutable after Load()
// and safe for concurrent reads.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the root configuration for every Filmatlas component.
//
// Loading order:
//  1. Defaults: built-in sensible defaults for all optional settings
//  2. Config file: optional YAML file (config.yaml) for persistent settings
//  3. Environment variables: override any setting (SERVER_PORT, JWT_SECRET, ...)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Ingest    IngestConfig    `koanf:"ingest"`
}

// ServerConfig holds HTTP server settings.
//
// Environment variables:
//   - SERVER_HOST: bind address (default 0.0.0.0)
//   - SERVER_PORT: listen port (default 8420)
//   - SERVER_TIMEOUT: read/write timeout (default 30s)
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment variables:
//   - DATABASE_PATH: database file path (default /data/filmatlas.duckdb)
//   - DATABASE_MAX_MEMORY: DuckDB memory limit (default 2GB)
//   - DATABASE_THREADS: DuckDB thread count (0 = NumCPU)
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// APIConfig holds pagination and rate-limit settings for the HTTP API.
type APIConfig struct {
	DefaultPageSize int           `koanf:"default_page_size"`
	MaxPageSize     int           `koanf:"max_page_size"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// SecurityConfig holds authentication settings.
//
// JWTSecret must be at least 32 characters; there is no default because a
// guessable secret makes every token forgeable.
type SecurityConfig struct {
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	BcryptCost     int           `koanf:"bcrypt_cost"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings.
//
// MatrixPath and IDsPath point at the snapshot produced by the encode
// command. When Enabled is true the server refuses to start without a
// loadable, consistent snapshot; there is no degraded mode.
type RecommendConfig struct {
	Enabled      bool   `koanf:"enabled"`
	MatrixPath   string `koanf:"matrix_path"`
	IDsPath      string `koanf:"ids_path"`
	DefaultLimit int    `koanf:"default_limit"`
	MaxLimit     int    `koanf:"max_limit"`
}

// IngestConfig holds TMDB CSV ingestion settings used by the ingest command.
type IngestConfig struct {
	CSVPath      string `koanf:"csv_path"`
	BatchSize    int    `koanf:"batch_size"`
	MaxMovies    int    `koanf:"max_movies"`
	MinVoteCount int    `koanf:"min_vote_count"`
}

// Validate checks the configuration for values that would break at runtime.
// It is called by Load(); call it directly when constructing configs by hand.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size %d must be in 1-%d", c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost %d out of range 4-31", c.Security.BcryptCost)
	}
	for _, origin := range c.API.CORSOrigins {
		if origin == "*" {
			continue
		}
		if _, err := url.Parse(origin); err != nil || !strings.Contains(origin, "://") {
			return fmt.Errorf("api.cors_origins entry %q is not a valid origin", origin)
		}
	}
	if c.Recommend.Enabled {
		if c.Recommend.MatrixPath == "" || c.Recommend.IDsPath == "" {
			return fmt.Errorf("recommend.matrix_path and recommend.ids_path are required when recommendations are enabled")
		}
		if c.Recommend.DefaultLimit < 1 || c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
			return fmt.Errorf("recommend.default_limit %d must be in 1-%d", c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
		}
	}
	if c.Ingest.BatchSize < 1 {
		return fmt.Errorf("ingest.batch_size must be positive, got %d", c.Ingest.BatchSize)
	}
	return nil
}
