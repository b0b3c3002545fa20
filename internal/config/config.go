// Package config loads service and CLI settings from defaults, an optional
// YAML file, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds every runtime setting.
type Config struct {
	Addr           string `koanf:"addr"`
	LogLevel       string `koanf:"log_level"`
	LogDevelopment bool   `koanf:"log_development"`
	ServiceName    string `koanf:"service_name"`

	OTelTracing bool `koanf:"otel_tracing"`
	OTelMetrics bool `koanf:"otel_metrics"`
	OTelLogs    bool `koanf:"otel_logs"`

	SessionTTL           time.Duration `koanf:"session_ttl"`
	SessionSweepInterval time.Duration `koanf:"session_sweep_interval"`
	MaxSessions          int           `koanf:"max_sessions"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Defaults, as loaded into koanf before any other source.
const (
	DefaultAddr                 = ":8080"
	DefaultLogLevel             = "info"
	DefaultServiceName          = "go-chi-calculator"
	DefaultSessionTTL           = 30 * time.Minute
	DefaultSessionSweepInterval = time.Minute
	DefaultMaxSessions          = 10000
	DefaultShutdownTimeout      = 5 * time.Second
)

func defaults() map[string]any {
	return map[string]any{
		"addr":                   DefaultAddr,
		"log_level":              DefaultLogLevel,
		"log_development":        false,
		"service_name":           DefaultServiceName,
		"otel_tracing":           true,
		"otel_metrics":           true,
		"otel_logs":              false,
		"session_ttl":            DefaultSessionTTL.String(),
		"session_sweep_interval": DefaultSessionSweepInterval.String(),
		"max_sessions":           DefaultMaxSessions,
		"shutdown_timeout":       DefaultShutdownTimeout.String(),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL))
	}
	if c.SessionSweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("session_sweep_interval must be positive, got %s", c.SessionSweepInterval))
	}
	if c.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("max_sessions must be positive, got %d", c.MaxSessions))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}
