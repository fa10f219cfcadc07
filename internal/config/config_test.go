// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validConfig returns a config that passes Validate(); tests mutate one
// field at a time.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults with secret",
			mutate: func(c *Config) {},
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.Timeout = -time.Second },
			wantErr: "server.timeout",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "short" },
			wantErr: "jwt_secret",
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *Config) { c.Security.BcryptCost = 2 },
			wantErr: "bcrypt_cost",
		},
		{
			name:    "default page size above max",
			mutate:  func(c *Config) { c.API.DefaultPageSize = 500 },
			wantErr: "default_page_size",
		},
		{
			name:    "invalid cors origin",
			mutate:  func(c *Config) { c.API.CORSOrigins = []string{"not-an-origin"} },
			wantErr: "cors_origins",
		},
		{
			name:   "wildcard cors origin allowed",
			mutate: func(c *Config) { c.API.CORSOrigins = []string{"*"} },
		},
		{
			name: "recommend enabled without paths",
			mutate: func(c *Config) {
				c.Recommend.Enabled = true
				c.Recommend.MatrixPath = ""
			},
			wantErr: "recommend.matrix_path",
		},
		{
			name: "recommend disabled skips path check",
			mutate: func(c *Config) {
				c.Recommend.Enabled = false
				c.Recommend.MatrixPath = ""
				c.Recommend.IDsPath = ""
			},
		},
		{
			name: "recommend default limit above max",
			mutate: func(c *Config) {
				c.Recommend.DefaultLimit = 100
				c.Recommend.MaxLimit = 50
			},
			wantErr: "default_limit",
		},
		{
			name:    "zero ingest batch size",
			mutate:  func(c *Config) { c.Ingest.BatchSize = 0 },
			wantErr: "batch_size",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "SERVER_PORT", want: "server.port"},
		{input: "SERVER_HOST", want: "server.host"},
		{input: "DATABASE_MAX_MEMORY", want: "database.max_memory"},
		{input: "SECURITY_JWT_SECRET", want: "security.jwt_secret"},
		{input: "RECOMMEND_MATRIX_PATH", want: "recommend.matrix_path"},
		{input: "API_CORS_ORIGINS", want: "api.cors_origins"},
		{input: "PATH", want: ""},
		{input: "HOME", want: ""},
		{input: "UNRELATED_THING", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransform(tt.input); got != tt.want {
				t.Errorf("envTransform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SECURITY_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("API_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RECOMMEND_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Recommend.Enabled {
		t.Error("Recommend.Enabled = true, want false")
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	for i := range want {
		if cfg.API.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.API.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 7777
logging:
  level: debug
  format: console
security:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v, want debug/console", cfg.Logging)
	}
	// Defaults survive where the file is silent.
	if cfg.Database.MaxMemory != "2GB" {
		t.Errorf("Database.MaxMemory = %q, want 2GB", cfg.Database.MaxMemory)
	}
}

func TestLoadMissingSecretFails(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("Load() without JWT secret should fail validation")
	}
}
