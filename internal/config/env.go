package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variables read by Load.
const (
	EnvAPIKey         = "ARCHIVEKEEPER_API_KEY"
	EnvDatabasePath   = "ARCHIVEKEEPER_DB"
	EnvAPIBaseURL     = "ARCHIVEKEEPER_API_BASE_URL"
	EnvRequestTimeout = "ARCHIVEKEEPER_REQUEST_TIMEOUT"
	EnvLogLevel       = "ARCHIVEKEEPER_LOG_LEVEL"
	EnvLogJSON        = "ARCHIVEKEEPER_LOG_JSON"
	EnvLegacyDir      = "ARCHIVEKEEPER_LEGACY_DIR"
)

func (c *Config) loadEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvDatabasePath); v != "" {
		c.DatabasePath = v
	}
	if v := getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLegacyDir); v != "" {
		c.LegacyDir = v
	}
	if v := getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	if v := getenv(EnvLogJSON); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogJSON, err)
		}
		c.LogJSON = b
	}
	return nil
}
