package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.True(t, cfg.OTelTracing)
	assert.True(t, cfg.OTelMetrics)
	assert.False(t, cfg.OTelLogs)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, DefaultSessionSweepInterval, cfg.SessionSweepInterval)
	assert.Equal(t, DefaultMaxSessions, cfg.MaxSessions)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
log_level: debug
max_sessions: 50
session_ttl: 10m
otel_logs: true
`), 0o600))

	t.Setenv("CALC_LOG_LEVEL", "warn")
	t.Setenv("CALC_MAX_SESSIONS", "75")

	cfg, err := Load(path, newFlags(t, "--max-sessions=100"))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr, "file overrides default")
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL, "file overrides default")
	assert.True(t, cfg.OTelLogs)
	assert.Equal(t, "warn", cfg.LogLevel, "env overrides file")
	assert.Equal(t, 100, cfg.MaxSessions, "flag overrides env")
}

func TestLoad_UnchangedFlagsDoNotOverrideEnv(t *testing.T) {
	t.Setenv("CALC_ADDR", ":7000")

	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CALC_LOG_LEVEL", "loud")

	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Addr:                 ":8080",
		LogLevel:             "info",
		SessionTTL:           time.Minute,
		SessionSweepInterval: time.Second,
		MaxSessions:          1,
		ShutdownTimeout:      time.Second,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, "addr"},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, "session_ttl"},
		{"negative sweep", func(c *Config) { c.SessionSweepInterval = -time.Second }, "session_sweep_interval"},
		{"zero sessions", func(c *Config) { c.MaxSessions = 0 }, "max_sessions"},
		{"zero shutdown", func(c *Config) { c.ShutdownTimeout = 0 }, "shutdown_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}
