package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SPENDERS_DB_PATH", "SPENDERS_LOG_LEVEL", "SPENDERS_CACHE_SIZE", "SPENDERS_CACHE_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.DBPath != "./data/spenders.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("CacheSize = %d, want 16", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SPENDERS_DB_PATH", "/tmp/custom.db")
	t.Setenv("SPENDERS_LOG_LEVEL", "debug")
	t.Setenv("SPENDERS_CACHE_SIZE", "64")
	t.Setenv("SPENDERS_CACHE_TTL", "90s")

	cfg := Load()

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q, want /tmp/custom.db", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.CacheSize != 64 {
		t.Errorf("CacheSize = %d, want 64", cfg.CacheSize)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Errorf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SPENDERS_CACHE_SIZE", "not-a-number")
	t.Setenv("SPENDERS_CACHE_TTL", "sometime soon")

	cfg := Load()

	if cfg.CacheSize != 16 {
		t.Errorf("CacheSize = %d, want default on malformed input", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want default on malformed input", cfg.CacheTTL)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		DBPath:    "./data/spenders.db",
		LogLevel:  "info",
		CacheSize: 16,
		CacheTTL:  5 * time.Minute,
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "level names are case insensitive",
			mutate: func(c *Config) { c.LogLevel = "WARN" },
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.DBPath = "" },
			errorString: "database path cannot be empty",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "zero cache size",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			errorString: "invalid cache size 0",
		},
		{
			name:        "cache ttl too short",
			mutate:      func(c *Config) { c.CacheTTL = 100 * time.Millisecond },
			errorString: "must be at least 1 second",
		},
		{
			name:        "cache ttl too long",
			mutate:      func(c *Config) { c.CacheTTL = 48 * time.Hour },
			errorString: "must be at most 24 hours",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errorString == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.errorString)
			}
			if !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.errorString)
			}
		})
	}
}

func TestConfigValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{DBPath: "", LogLevel: "loud", CacheSize: 0, CacheTTL: 0}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want combined error")
	}
	for _, want := range []string{"database path", "log level", "cache size", "cache TTL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("combined error missing %q: %v", want, err)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "WARN", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "unknown", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}
