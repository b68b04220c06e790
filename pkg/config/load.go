package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. A missing file is not an error: every field has a usable default,
// so the wrapper works without a configuration file at all. The
// configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SNAPWHEEL_SECTION_FIELD (e.g., SNAPWHEEL_BACKUP_CONF).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	// First load from file (this already applies defaults).
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	// Re-validate after overrides.
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format SNAPWHEEL_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Backup overrides
	if val := os.Getenv("SNAPWHEEL_BACKUP_TOOL"); val != "" {
		cfg.Backup.Tool = val
	}
	if val := os.Getenv("SNAPWHEEL_BACKUP_CONF"); val != "" {
		cfg.Backup.Conf = val
	}

	// State overrides
	if val := os.Getenv("SNAPWHEEL_STATE_DIR"); val != "" {
		cfg.State.Dir = val
	}
	if val := os.Getenv("SNAPWHEEL_STATE_FILE"); val != "" {
		cfg.State.File = val
	}

	// Inhibit overrides
	if val := os.Getenv("SNAPWHEEL_INHIBIT_HOURS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Inhibit.Hours = &i
		}
	}

	// Journal overrides
	if val := os.Getenv("SNAPWHEEL_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Journal.Enabled = &b
		}
	}
	if val := os.Getenv("SNAPWHEEL_JOURNAL_PATH"); val != "" {
		cfg.Journal.Path = val
	}

	// Links overrides
	if val := os.Getenv("SNAPWHEEL_LINKS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Links.Enabled = b
		}
	}
	if val := os.Getenv("SNAPWHEEL_LINKS_DATED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Links.Dated = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv("SNAPWHEEL_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SNAPWHEEL_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SNAPWHEEL_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SNAPWHEEL_METRICS_TEXTFILE_PATH"); val != "" {
		cfg.Telemetry.Metrics.TextfilePath = val
	}
	if val := os.Getenv("SNAPWHEEL_METRICS_NAMESPACE"); val != "" {
		cfg.Telemetry.Metrics.Namespace = val
	}
}
