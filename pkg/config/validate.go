package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "backup.conf").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateBackup(&cfg.Backup)...)
	errs = append(errs, validateState(&cfg.State)...)
	errs = append(errs, validateInhibit(&cfg.Inhibit)...)
	errs = append(errs, validateJournal(&cfg.Journal)...)
	errs = append(errs, validateLinks(&cfg.Links)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateBackup validates backup tool configuration.
func validateBackup(cfg *BackupConfig) []FieldError {
	var errs []FieldError

	if cfg.Tool == "" {
		errs = append(errs, FieldError{
			Field:   "backup.tool",
			Message: "backup tool is required",
		})
	}
	if cfg.Conf == "" {
		errs = append(errs, FieldError{
			Field:   "backup.conf",
			Message: "rsnapshot configuration path is required",
		})
	}

	return errs
}

// validateState validates state persistence configuration.
func validateState(cfg *StateConfig) []FieldError {
	var errs []FieldError

	if cfg.Dir == "" && cfg.File == "" {
		errs = append(errs, FieldError{
			Field:   "state.dir",
			Message: "a state directory or an explicit state file is required",
		})
	}

	return errs
}

// validateInhibit validates the inhibition window.
func validateInhibit(cfg *InhibitConfig) []FieldError {
	var errs []FieldError

	if cfg.Hours != nil && *cfg.Hours < 0 {
		errs = append(errs, FieldError{
			Field:   "inhibit.hours",
			Message: "must be non-negative (zero disables the check)",
		})
	}

	return errs
}

// validateJournal validates run history configuration.
func validateJournal(cfg *JournalConfig) []FieldError {
	var errs []FieldError

	if cfg.IsEnabled() && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "journal.path",
			Message: "journal path is required when journaling is enabled",
		})
	}

	return errs
}

// validateLinks validates symlink upkeep configuration.
func validateLinks(cfg *LinksConfig) []FieldError {
	var errs []FieldError

	if cfg.Dated && !cfg.Enabled {
		errs = append(errs, FieldError{
			Field:   "links.dated",
			Message: "dated links require links.enabled to be true",
		})
	}

	return errs
}

// validateTelemetry validates logging and metrics configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error (got %q)", cfg.Logging.Level),
		})
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "console", "text", "json":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of console, text, json (got %q)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.Namespace == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.namespace",
				Message: "metrics namespace is required when metrics are enabled",
			})
		}
		// node_exporter only collects files with a .prom extension.
		if cfg.Metrics.TextfilePath != "" && !strings.HasSuffix(cfg.Metrics.TextfilePath, ".prom") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.textfile_path",
				Message: "textfile path must end in .prom",
			})
		}
	}

	return errs
}
