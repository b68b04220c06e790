package journal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// errNilEntry is returned when a nil entry is recorded.
var errNilEntry = errors.New("entry cannot be nil")

// Outcome classifies how an invocation ended.
type Outcome string

const (
	// OutcomeCompleted means every due tier ran successfully.
	OutcomeCompleted Outcome = "completed"

	// OutcomeSimulated means the run was a dry run: the due set was
	// computed and reported but no state was persisted.
	OutcomeSimulated Outcome = "simulated"

	// OutcomeInhibited means the invocation was skipped because the most
	// frequent tier ran too recently.
	OutcomeInhibited Outcome = "inhibited"

	// OutcomeFailed means the invocation aborted with an error.
	OutcomeFailed Outcome = "failed"
)

// Entry is one recorded invocation.
type Entry struct {
	// ID is a unique run identifier. Assigned on Record when empty.
	ID string `json:"id"`

	// StartedAt and FinishedAt bound the invocation.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// ConfigPath is the rsnapshot configuration the run was driven by.
	ConfigPath string `json:"config_path"`

	// CycleIndex is the post-increment cycle index the due set was
	// computed from. -1 when the invocation never advanced the counter
	// (inhibited or aborted early).
	CycleIndex int `json:"cycle_index"`

	// CycleTotal is the full rotation period of the schedule.
	CycleTotal int `json:"cycle_total"`

	// DueTiers are the tiers that were due, coarsest first.
	DueTiers []string `json:"due_tiers"`

	// Simulate records whether this was a dry run.
	Simulate bool `json:"simulate"`

	// Outcome classifies the result.
	Outcome Outcome `json:"outcome"`

	// Error holds the failure text for failed runs, empty otherwise.
	Error string `json:"error,omitempty"`
}

// Store records and queries invocation entries.
type Store interface {
	// Record persists one entry, assigning ID/StartedAt/FinishedAt
	// defaults when unset.
	Record(ctx context.Context, entry *Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*Entry, error)

	// LastCompleted returns the newest entry with OutcomeCompleted, or
	// nil when no run has completed yet.
	LastCompleted(ctx context.Context) (*Entry, error)

	// Close releases any resources held by the store.
	Close() error
}

// StorageError reports a failure in a journal store.
type StorageError struct {
	Operation string // operation that failed ("record", "recent", ...)
	Cause     error  // underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("journal error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Cause:     cause,
	}
}
