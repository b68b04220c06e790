package cyclestate

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxStateBytes bounds how much of a state file is read. A legitimate
// counter is a handful of digits; anything larger is corruption.
const maxStateBytes = 128

// CorruptError reports a state file whose contents are not a non-negative
// decimal integer. It is fatal and never auto-repaired.
type CorruptError struct {
	Path    string // state file path
	Content string // offending content, truncated for display
	Cause   error  // parse error, nil when the value parsed but was negative
}

// Error implements the error interface.
func (e *CorruptError) Error() string {
	return fmt.Sprintf("cycle state corrupt [path=%s]: %q is not a non-negative integer", e.Path, e.Content)
}

// Unwrap returns the underlying cause error.
func (e *CorruptError) Unwrap() error {
	return e.Cause
}

// Store persists the cycle index at a fixed path.
//
// A Store assumes single-invocation-at-a-time use; there is no inter-process
// locking, and concurrent invocations against the same path race with
// last-writer-wins semantics.
type Store struct {
	path string
}

// NewStore creates a Store for the given state file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted cycle index, or 0 when no state file exists
// yet. Returns a *CorruptError when the file exists but does not hold a
// non-negative decimal integer.
func (s *Store) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read cycle state: %w", err)
	}

	if len(data) > maxStateBytes {
		data = data[:maxStateBytes]
	}
	content := strings.TrimSpace(string(data))

	index, parseErr := strconv.Atoi(content)
	if parseErr != nil || index < 0 {
		return 0, &CorruptError{
			Path:    s.path,
			Content: content,
			Cause:   parseErr,
		}
	}
	return index, nil
}

// Save atomically persists the cycle index: the value is written to a
// temporary file next to the target and renamed into place.
func (s *Store) Save(index int) error {
	if index < 0 {
		return fmt.Errorf("refusing to persist negative cycle index %d", index)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp := s.path + ".tmp"
	data := []byte(strconv.Itoa(index) + "\n")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temporary state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Advance computes the next cycle index modulo total, persists it, and
// returns it. The due set for an invocation is computed from this
// post-increment value.
func (s *Store) Advance(total int) (int, error) {
	next, err := s.Peek(total)
	if err != nil {
		return 0, err
	}
	if err := s.Save(next); err != nil {
		return 0, err
	}
	return next, nil
}

// Peek computes the same next index as Advance without persisting
// anything, so a dry run leaves no trace.
func (s *Store) Peek(total int) (int, error) {
	if total < 1 {
		return 0, fmt.Errorf("cycle total must be at least 1, got %d", total)
	}
	index, err := s.Load()
	if err != nil {
		return 0, err
	}
	return (index + 1) % total, nil
}

// DefaultPath derives the state file path for a configuration file:
// cycle-<fingerprint>.state under stateDir, where the fingerprint is the
// leading 16 hex characters of the SHA-256 of the absolute config path.
// Distinct configurations therefore never share a counter.
func DefaultPath(stateDir, configPath string) string {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		abs = configPath
	}
	sum := sha256.Sum256([]byte(abs))
	fingerprint := hex.EncodeToString(sum[:])[:16]
	return filepath.Join(stateDir, "cycle-"+fingerprint+".state")
}
