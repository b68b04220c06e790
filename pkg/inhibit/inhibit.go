package inhibit

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Inhibited reports that the invocation was skipped because the most
// frequent tier ran too recently. It is a policy decision, not a failure.
type Inhibited struct {
	Tier   string        // most frequent tier
	Age    time.Duration // age of that tier's newest snapshot
	Window time.Duration // configured inhibition window
}

// Error implements the error interface.
func (e *Inhibited) Error() string {
	return fmt.Sprintf("invocation inhibited [tier=%s]: newest snapshot is %s old, window is %s",
		e.Tier, e.Age.Round(time.Second), e.Window)
}

// RootError reports that the snapshot root could not be inspected. The
// invocation aborts without mutating state; the cycle counter is still
// valid, which distinguishes this from state corruption.
type RootError struct {
	Root  string // snapshot root path
	Cause error  // underlying error
}

// Error implements the error interface.
func (e *RootError) Error() string {
	return fmt.Sprintf("snapshot root inaccessible [root=%s]: %v", e.Root, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RootError) Unwrap() error {
	return e.Cause
}

// Checker performs the inhibition check.
type Checker struct {
	window time.Duration
	logger *slog.Logger
}

// NewChecker creates a Checker with the given window. A window of zero or
// less disables checking. A nil logger falls back to the process default.
func NewChecker(window time.Duration, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		window: window,
		logger: logger.With("component", "inhibit"),
	}
}

// Window returns the configured inhibition window.
func (c *Checker) Window() time.Duration {
	return c.window
}

// Check inspects the newest snapshot of the finest tier under root.
//
// Returns nil when the invocation may proceed, *Inhibited when it should be
// skipped, and *RootError when the snapshot root cannot be inspected.
func (c *Checker) Check(root, finestTier string) error {
	if c.window <= 0 {
		return nil
	}
	if root == "" {
		return &RootError{Root: root, Cause: errors.New("no snapshot_root declared")}
	}

	info, err := os.Stat(root)
	if err != nil {
		return &RootError{Root: root, Cause: err}
	}
	if !info.IsDir() {
		return &RootError{Root: root, Cause: errors.New("not a directory")}
	}

	newest := filepath.Join(root, finestTier+".0")
	snapInfo, err := os.Stat(newest)
	if errors.Is(err, os.ErrNotExist) {
		// No snapshot yet; nothing to be too recent.
		c.logger.Debug("no previous snapshot found", "path", newest)
		return nil
	}
	if err != nil {
		return &RootError{Root: root, Cause: err}
	}

	age := time.Since(snapInfo.ModTime())
	if age < c.window {
		return &Inhibited{Tier: finestTier, Age: age, Window: c.window}
	}

	c.logger.Debug("inhibition check passed",
		"tier", finestTier,
		"age", age.Round(time.Second),
		"window", c.window)
	return nil
}
