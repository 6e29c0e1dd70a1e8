// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreBolt   = "bolt"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreDriver selects the task store: memory or bolt.
	StoreDriver string `koanf:"store_driver"`

	// BoltPath is the bbolt database file used by the bolt driver.
	BoltPath string `koanf:"bolt_path"`

	// BoltTimeoutMS bounds how long opening the database waits for its file lock.
	BoltTimeoutMS int `koanf:"bolt_timeout_ms"`

	// CatalogPath points to a YAML rubric override; empty uses the built-in table.
	CatalogPath string `koanf:"catalog_path"`

	// QualityRule selects the Calidad formula: rescaled or proportional.
	QualityRule string `koanf:"quality_rule"`

	// AutosaveDelayMS is the quiet period before notes are persisted.
	AutosaveDelayMS int `koanf:"autosave_delay_ms"`

	// MaxImportBytes caps the size of an uploaded backup document.
	MaxImportBytes int64 `koanf:"max_import_bytes"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		StoreDriver:     StoreBolt,
		BoltPath:        "incentivo.db",
		BoltTimeoutMS:   1000,
		CatalogPath:     "",
		QualityRule:     "rescaled",
		AutosaveDelayMS: 800,
		MaxImportBytes:  10 << 20,
	}
}

// Validate checks field values and cross-field constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StoreBolt:
		if strings.TrimSpace(c.BoltPath) == "" {
			return fmt.Errorf("%w: bolt_path must not be empty for the bolt driver", ErrInvalidConfig)
		}
		if c.BoltTimeoutMS <= 0 {
			return fmt.Errorf("%w: bolt_timeout_ms must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	}
	switch strings.ToLower(c.QualityRule) {
	case "rescaled", "proportional":
	default:
		return fmt.Errorf("%w: unknown quality_rule %q", ErrInvalidConfig, c.QualityRule)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.AutosaveDelayMS <= 0 {
		return fmt.Errorf("%w: autosave_delay_ms must be positive", ErrInvalidConfig)
	}
	if c.MaxImportBytes <= 0 {
		return fmt.Errorf("%w: max_import_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}
