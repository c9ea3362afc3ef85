package config

import "github.com/spf13/pflag"

// BindFlags registers one flag per setting on fs, defaulting to the
// current values of c. Parsing fs then overwrites c in place.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a JSON or YAML config file")
	fs.StringVar(&c.DatabasePath, "db", c.DatabasePath, "path to the SQLite database")
	fs.StringVar(&c.APIBaseURL, "api-url", c.APIBaseURL, "catalog API base URL")
	fs.StringVar(&c.APIKey, "api-key", c.APIKey, "catalog API key")
	fs.DurationVar(&c.RequestTimeout, "timeout", c.RequestTimeout, "catalog request timeout")
	fs.DurationVar(&c.CacheTTL, "cache-ttl", c.CacheTTL, "how long fetched records are cached, 0 disables")
	fs.StringVar(&c.LogBackend, "log-backend", c.LogBackend, "logging backend: slog or zap")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "log as JSON")
	fs.StringVar(&c.LegacyDir, "legacy-dir", c.LegacyDir, "directory holding legacy JSON storage")
	fs.StringVar(&c.CatalogWebURL, "catalog-web-url", c.CatalogWebURL, "base URL for catalog record links")
}
