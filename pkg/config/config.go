package config

import "time"

// Config is the root configuration structure for snapwheel. It configures
// the wrapper only; retention tiers and the snapshot root always come from
// the rsnapshot configuration file referenced by Backup.Conf.
type Config struct {
	// Backup identifies the external backup tool and its configuration.
	Backup BackupConfig `yaml:"backup"`

	// State controls where the persisted cycle counter lives.
	State StateConfig `yaml:"state"`

	// Inhibit controls the too-recent-snapshot skip policy.
	Inhibit InhibitConfig `yaml:"inhibit"`

	// Journal controls the run history database.
	Journal JournalConfig `yaml:"journal"`

	// Links controls convenience symlink upkeep under the snapshot root.
	Links LinksConfig `yaml:"links"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BackupConfig identifies the external backup tool snapwheel wraps.
type BackupConfig struct {
	// Tool is the backup executable to invoke, resolved via PATH when
	// not absolute.
	// Default: "rsnapshot"
	Tool string `yaml:"tool"`

	// Conf is the rsnapshot configuration file that declares the
	// retention tiers and the snapshot root.
	// Default: "/etc/rsnapshot.conf"
	Conf string `yaml:"conf"`
}

// StateConfig controls cycle counter persistence.
type StateConfig struct {
	// Dir is the directory holding state files. Each rsnapshot
	// configuration gets its own state file inside it, named after a
	// fingerprint of the configuration path.
	// Default: "/var/lib/snapwheel"
	Dir string `yaml:"dir"`

	// File overrides the derived state file location with an explicit
	// path. When set, Dir is ignored.
	// Default: "" (derive from the rsnapshot configuration path)
	File string `yaml:"file"`
}

// InhibitConfig controls the recent-snapshot inhibition policy.
type InhibitConfig struct {
	// Hours is the inhibition window: when the newest snapshot of the
	// most frequent tier is younger than this many hours, the whole
	// invocation is skipped. Zero disables the check. Pointer to
	// distinguish unset from an explicit zero.
	// Default: 20
	Hours *int `yaml:"hours"`
}

// Window returns the inhibition window as a duration, treating unset as
// the default window.
func (c InhibitConfig) Window() time.Duration {
	if c.Hours == nil {
		return DefaultInhibitHours * time.Hour
	}
	return time.Duration(*c.Hours) * time.Hour
}

// JournalConfig controls the run history database.
type JournalConfig struct {
	// Enabled controls whether runs are recorded. Pointer to
	// distinguish unset from an explicit false.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the SQLite database file holding run history.
	// Default: "/var/lib/snapwheel/journal.db"
	Path string `yaml:"path"`
}

// IsEnabled reports whether journaling is on, treating unset as enabled.
func (c JournalConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LinksConfig controls symlink upkeep under the snapshot root.
type LinksConfig struct {
	// Enabled controls whether a "latest" symlink is refreshed after
	// each completed rotation.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Dated additionally maintains a by-date/ directory of symlinks
	// named after each snapshot's timestamp. Requires Enabled.
	// Default: false
	Dated bool `yaml:"dated"`
}

// TelemetryConfig contains logging and metrics configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus textfile metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum level to log: debug, info, warn, or error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: console, text, or json.
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes source file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus textfile metrics configuration.
// snapwheel is a short-lived process, so metrics are exposed through the
// node_exporter textfile collector rather than an HTTP endpoint.
type MetricsConfig struct {
	// Enabled controls whether run metrics are recorded at all.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// TextfilePath is the .prom file written after each run, typically
	// inside the node_exporter textfile collector directory. Empty
	// keeps metrics in-process only.
	// Default: ""
	TextfilePath string `yaml:"textfile_path"`

	// Namespace prefixes every metric name.
	// Default: "snapwheel"
	Namespace string `yaml:"namespace"`
}
