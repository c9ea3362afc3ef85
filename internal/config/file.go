package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/archivekeeper/internal/timex"
)

// fileConfig is the on-disk shape. Pointer fields distinguish "absent"
// from a zero value so a file may set only some keys.
type fileConfig struct {
	DatabasePath   *string         `json:"database_path" yaml:"database_path"`
	APIBaseURL     *string         `json:"api_base_url" yaml:"api_base_url"`
	APIKey         *string         `json:"api_key" yaml:"api_key"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	CacheTTL       *timex.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	LogBackend     *string         `json:"log_backend" yaml:"log_backend"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	LogJSON        *bool           `json:"log_json" yaml:"log_json"`
	ListenAddr     *string         `json:"listen_addr" yaml:"listen_addr"`
	LegacyDir      *string         `json:"legacy_dir" yaml:"legacy_dir"`
	CatalogWebURL  *string         `json:"catalog_web_url" yaml:"catalog_web_url"`
}

// loadFile overlays c with the keys present in path. Files ending in .yaml
// or .yml are YAML, everything else JSON.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&c.DatabasePath, fc.DatabasePath)
	setString(&c.APIBaseURL, fc.APIBaseURL)
	setString(&c.APIKey, fc.APIKey)
	setString(&c.LogBackend, fc.LogBackend)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.ListenAddr, fc.ListenAddr)
	setString(&c.LegacyDir, fc.LegacyDir)
	setString(&c.CatalogWebURL, fc.CatalogWebURL)
	if fc.RequestTimeout != nil {
		c.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.CacheTTL != nil {
		c.CacheTTL = fc.CacheTTL.Duration
	}
	if fc.LogJSON != nil {
		c.LogJSON = *fc.LogJSON
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
