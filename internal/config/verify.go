package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if cfg.Session.RefreshInterval <= 0 {
		return errors.New("session.refresh_interval must be positive")
	}
	if cfg.Metrics.PollInterval <= 0 {
		return errors.New("metrics.poll_interval must be positive")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	return nil
}
