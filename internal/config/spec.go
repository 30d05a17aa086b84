// Package config defines the attendctl configuration structure.
package config

import "time"

// Config is the root configuration for attendctl.
type Config struct {
	API     APISection     `koanf:"api"`
	Storage StorageSection `koanf:"storage"`
	Session SessionSection `koanf:"session"`
	Metrics MetricsSection `koanf:"metrics"`
	Grafana GrafanaSection `koanf:"grafana"`
	Log     LogSection     `koanf:"log"`
}

// APISection configures the attendance backend endpoint.
type APISection struct {
	// BaseURL is the backend base URL (login, attendance, metrics).
	BaseURL string `koanf:"base_url"`

	// Timeout bounds every single HTTP request.
	Timeout time.Duration `koanf:"timeout"`
}

// StorageSection configures session persistence.
type StorageSection struct {
	// DataDir holds the durable session store. Empty means sessions
	// do not survive process restarts.
	DataDir string `koanf:"data_dir"`
}

// SessionSection configures session lifecycle behavior.
type SessionSection struct {
	// RefreshInterval is how often the background expiry check runs
	// while a session is active.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// MetricsSection configures the metrics view.
type MetricsSection struct {
	// PollInterval is the re-fetch interval in watch mode.
	PollInterval time.Duration `koanf:"poll_interval"`
}

// GrafanaSection configures the embedded-analytics view.
type GrafanaSection struct {
	// URL is the dashboard the grafana command points at.
	URL string `koanf:"url"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
