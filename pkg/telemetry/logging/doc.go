// Package logging builds the structured logger used across snapwheel.
//
// # Overview
//
// Logging is built on Go's standard log/slog. The logger is constructed
// once in the command layer and handed to every component explicitly;
// library packages never configure process-wide logging themselves.
//
// Three output formats are supported:
//
//   - json: machine-readable, for log shippers (slog JSON handler)
//   - text: plain key=value lines (slog text handler)
//   - console: colorized human-readable output (tint handler)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//	if err != nil {
//	    return err
//	}
//
//	logger.Info("rotation step complete",
//	    "cycle_index", 28,
//	    "due_tiers", []string{"monthly", "weekly", "daily"},
//	)
//
// Components derive their own child loggers:
//
//	log := logger.With("component", "scheduler")
//
// Logs go to stderr by default so that command output on stdout stays
// clean for pipes.
package logging
