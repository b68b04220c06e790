package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Command describes one external tool invocation.
type Command struct {
	// Tool is the executable to run, as a name resolved via PATH or an
	// absolute path.
	Tool string

	// Args is the full argument vector, not including the tool itself.
	Args []string

	// Tier is the retention tier this invocation serves. Used for
	// reporting only.
	Tier string
}

// String returns the command line as it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Tool
	}
	return c.Tool + " " + strings.Join(c.Args, " ")
}

// CommandError reports a failed external tool invocation.
type CommandError struct {
	Tier     string // retention tier the invocation served
	ExitCode int    // process exit code, -1 when the process did not start or was signalled
	Cause    error  // underlying error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("external command error [tier=%s, exit=%d]: %v", e.Tier, e.ExitCode, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// NewCommandError creates a new CommandError.
func NewCommandError(tier string, exitCode int, cause error) *CommandError {
	return &CommandError{
		Tier:     tier,
		ExitCode: exitCode,
		Cause:    cause,
	}
}

// Runner executes external tool invocations synchronously.
type Runner interface {
	// Run executes the command and blocks until the process exits.
	// Returns a *CommandError when the process exits non-zero or cannot
	// be started. Cancelling the context kills the process.
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive the child's output. Both default to the
	// parent's streams so tool output reaches the operator unchanged.
	Stdout io.Writer
	Stderr io.Writer

	logger *slog.Logger
}

// NewExecRunner creates an ExecRunner. A nil logger falls back to the
// process default.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger.With("component", "runner"),
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	proc := exec.CommandContext(ctx, cmd.Tool, cmd.Args...)
	proc.Stdout = r.Stdout
	proc.Stderr = r.Stderr

	r.logger.Info("invoking external tool",
		"tier", cmd.Tier,
		"command", cmd.String())

	start := time.Now()
	if err := proc.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return NewCommandError(cmd.Tier, exitErr.ExitCode(), err)
		}
		return NewCommandError(cmd.Tier, -1, err)
	}

	r.logger.Info("external tool completed",
		"tier", cmd.Tier,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}
