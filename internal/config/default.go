package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 30 * time.Second

	DefaultRefreshInterval = 5 * time.Minute
	DefaultPollInterval    = 30 * time.Second

	DefaultGrafanaURL = "http://localhost:3000/d/attendance/attendance-overview"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultDataDir returns the per-user session store location.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".attendctl", "data")
	}
	return filepath.Join(home, ".attendctl", "data")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APISection{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Storage: StorageSection{
			DataDir: DefaultDataDir(),
		},
		Session: SessionSection{
			RefreshInterval: DefaultRefreshInterval,
		},
		Metrics: MetricsSection{
			PollInterval: DefaultPollInterval,
		},
		Grafana: GrafanaSection{
			URL: DefaultGrafanaURL,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
