package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8081",
		RateLimitPerMinute: 120,
		ShutdownTimeout:    30 * time.Second,
		DataBackend:        "memory",
		LogLevel:           "info",
		LogFormat:          "text",
		DefaultTheme:       "light",
		DefaultChart:       "pie",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid memory backend config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) { c.DataBackend = "sqlite" },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "trace" },
			wantErr:     true,
			errorString: "invalid log level 'trace'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "invalid theme",
			mutate:      func(c *Config) { c.DefaultTheme = "sepia" },
			wantErr:     true,
			errorString: "invalid default theme 'sepia'",
		},
		{
			name:        "invalid chart",
			mutate:      func(c *Config) { c.DefaultChart = "donut" },
			wantErr:     true,
			errorString: "invalid default chart 'donut'",
		},
		{
			name:        "rate limit too low",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name:        "shutdown timeout too short",
			mutate:      func(c *Config) { c.ShutdownTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "shutdown timeout too long",
			mutate:      func(c *Config) { c.ShutdownTimeout = time.Hour },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("expected error to contain %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.DataBackend = "nope"
	cfg.DefaultChart = "donut"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 aggregated problems, got %d in %q", got, err.Error())
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_BACKEND", "LOG_LEVEL", "LOG_FORMAT", "DEFAULT_THEME",
		"DEFAULT_CHART", "RATE_LIMIT_PER_MINUTE", "SHUTDOWN_TIMEOUT", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("RateLimitPerMinute = %d, want 120", cfg.RateLimitPerMinute)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if cfg.Addr() != ":8081" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", " SQLite ")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("DEFAULT_THEME", "dark")
	t.Setenv("DEFAULT_CHART", "bar")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9090" || cfg.DataBackend != "sqlite" || cfg.LogFormat != "json" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.DefaultTheme != "dark" || cfg.DefaultChart != "bar" {
		t.Errorf("unexpected screen defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 5*time.Second || cfg.MetricsEnabled {
		t.Errorf("unexpected server settings: %+v", cfg)
	}
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
