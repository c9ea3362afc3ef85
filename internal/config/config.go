package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/archivekeeper/internal/catalog"
	"github.com/dmitrijs2005/archivekeeper/internal/flagx"
	"github.com/dmitrijs2005/archivekeeper/internal/logging"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
	"github.com/dmitrijs2005/archivekeeper/internal/services"
)

// Config holds runtime settings.
//
// APIBaseURL and CatalogWebURL here are fallbacks: values saved in the
// settings table take precedence once the store is open.
type Config struct {
	DatabasePath   string
	APIBaseURL     string
	APIKey         string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	LogBackend     string
	LogLevel       string
	LogJSON        bool
	ListenAddr     string
	LegacyDir      string
	CatalogWebURL  string
}

const appDir = "archivekeeper"

// LoadDefaults populates c with defaults. The database lives in the user
// config directory when one is known.
func (c *Config) LoadDefaults() {
	c.DatabasePath = defaultDatabasePath()
	c.APIBaseURL = catalog.DefaultBaseURL
	c.APIKey = ""
	c.RequestTimeout = 15 * time.Second
	c.CacheTTL = 5 * time.Minute
	c.LogBackend = logging.BackendSlog
	c.LogLevel = "info"
	c.LogJSON = false
	c.ListenAddr = "127.0.0.1:8787"
	c.LegacyDir = ""
	c.CatalogWebURL = models.DefaultCatalogWebURL
}

func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "archivekeeper.db"
	}
	return filepath.Join(dir, appDir, "archivekeeper.db")
}

// Load applies defaults, the config file named in args and the environment.
// Flags are applied later by the command parser through BindFlags, using
// the returned values as their defaults.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigPath(args); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.loadEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DatabasePath) == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache ttl must not be negative, got %s", c.CacheTTL))
	}
	switch c.LogBackend {
	case logging.BackendSlog, logging.BackendZap:
	default:
		errs = append(errs, fmt.Errorf("unknown log backend %q", c.LogBackend))
	}
	if err := services.ValidateHTTPURL(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api base url: %w", err))
	}
	if c.CatalogWebURL != "" {
		if err := services.ValidateHTTPURL(c.CatalogWebURL); err != nil {
			errs = append(errs, fmt.Errorf("catalog web url: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
