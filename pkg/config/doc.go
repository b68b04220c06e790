// Package config provides configuration management for snapwheel.
//
// This package handles loading and validating the snapwheel configuration
// from YAML files with environment variable overrides. The snapwheel config
// is deliberately separate from the rsnapshot configuration it wraps: the
// rsnapshot file stays the single source of truth for retention tiers and
// the snapshot root, while this file configures the wrapper itself.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("snapwheel.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("snapwheel.yaml")
//
// A missing file is not an error: all fields have usable defaults, so
// LoadConfig returns a default configuration when path does not exist.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SNAPWHEEL_SECTION_FIELD.
// For example:
//
//   - SNAPWHEEL_BACKUP_CONF overrides backup.conf
//   - SNAPWHEEL_STATE_DIR overrides state.dir
//   - SNAPWHEEL_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// Command-line flags sit above all of these; the cmd layer applies them
// after loading.
//
// # Validation
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - inhibit.hours: must be non-negative
//	  - telemetry.logging.level: must be one of debug, info, warn, error
//
// # Example Configuration
//
// Here is a complete configuration file:
//
//	backup:
//	  tool: "rsnapshot"
//	  conf: "/etc/rsnapshot.conf"
//
//	state:
//	  dir: "/var/lib/snapwheel"
//
//	inhibit:
//	  hours: 20
//
//	journal:
//	  enabled: true
//	  path: "/var/lib/snapwheel/journal.db"
//
//	links:
//	  enabled: true
//	  dated: true
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "console"
//	  metrics:
//	    enabled: true
//	    textfile_path: "/var/lib/node_exporter/textfile/snapwheel.prom"
package config
