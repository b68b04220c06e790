package config

// Default values for configuration fields.
const (
	// Backup defaults
	DefaultBackupTool = "rsnapshot"
	DefaultBackupConf = "/etc/rsnapshot.conf"

	// State defaults
	DefaultStateDir = "/var/lib/snapwheel"

	// Inhibit defaults. 20 hours lets a daily cron job drift without
	// ever double-firing within one day.
	DefaultInhibitHours = 20

	// Journal defaults
	DefaultJournalEnabled = true
	DefaultJournalPath    = "/var/lib/snapwheel/journal.db"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "console"
	DefaultMetricsNamespace = "snapwheel"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Backup defaults
	if cfg.Backup.Tool == "" {
		cfg.Backup.Tool = DefaultBackupTool
	}
	if cfg.Backup.Conf == "" {
		cfg.Backup.Conf = DefaultBackupConf
	}

	// State defaults. File stays empty so the state path derives from
	// the rsnapshot configuration path unless explicitly overridden.
	if cfg.State.Dir == "" {
		cfg.State.Dir = DefaultStateDir
	}

	// Inhibit defaults. Zero is a valid explicit value (check
	// disabled), so only a nil pointer takes the default.
	if cfg.Inhibit.Hours == nil {
		hours := DefaultInhibitHours
		cfg.Inhibit.Hours = &hours
	}

	// Journal defaults
	if cfg.Journal.Enabled == nil {
		enabled := DefaultJournalEnabled
		cfg.Journal.Enabled = &enabled
	}
	if cfg.Journal.Path == "" {
		cfg.Journal.Path = DefaultJournalPath
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}

	// Links defaults are false (zero values), which is correct.
}
