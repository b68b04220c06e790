package rsnapshot

import "fmt"

// ConfigError reports an unreadable or malformed rsnapshot configuration.
type ConfigError struct {
	Path    string // configuration file path, empty when parsing a raw stream
	Line    int    // 1-based line number, 0 when the error is not line-specific
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("rsnapshot config error [path=%s, line=%d]: %s", e.Path, e.Line, e.Message)
	case e.Path != "":
		return fmt.Sprintf("rsnapshot config error [path=%s]: %s", e.Path, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("rsnapshot config error [line=%d]: %s", e.Line, e.Message)
	default:
		return fmt.Sprintf("rsnapshot config error: %s", e.Message)
	}
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(path string, line int, message string, cause error) *ConfigError {
	return &ConfigError{
		Path:    path,
		Line:    line,
		Message: message,
		Cause:   cause,
	}
}
