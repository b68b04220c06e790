package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultBusyTimeout is how long SQLite waits for locks before failing.
const DefaultBusyTimeout = 5 * time.Second

// SQLiteStore persists journal entries in a single SQLite file.
//
// The database is opened in WAL mode with a single writer connection,
// which is all a one-invocation-at-a-time scheduler needs.
type SQLiteStore struct {
	db        *sql.DB
	path      string
	closeOnce sync.Once

	recordStmt *sql.Stmt
	recentStmt *sql.Stmt
	lastStmt   *sql.Stmt
}

// NewSQLiteStore opens (creating if necessary) the journal database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, NewStorageError("open", fmt.Errorf("journal path cannot be empty"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, NewStorageError("open", fmt.Errorf("create journal directory: %w", err))
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		path, int(DefaultBusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, NewStorageError("open", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db, path: path}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, NewStorageError("open", fmt.Errorf("initialize schema: %w", err))
	}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, NewStorageError("open", fmt.Errorf("prepare statements: %w", err))
	}

	return store, nil
}

// initSchema creates the journal schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		config_path TEXT NOT NULL,
		cycle_index INTEGER NOT NULL,
		cycle_total INTEGER NOT NULL,
		due_tiers TEXT NOT NULL,
		simulate INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.recordStmt, err = s.db.Prepare(`
		INSERT INTO runs (id, started_at, finished_at, config_path, cycle_index, cycle_total, due_tiers, simulate, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare record statement: %w", err)
	}

	s.recentStmt, err = s.db.Prepare(`
		SELECT id, started_at, finished_at, config_path, cycle_index, cycle_total, due_tiers, simulate, outcome, error
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("prepare recent statement: %w", err)
	}

	s.lastStmt, err = s.db.Prepare(`
		SELECT id, started_at, finished_at, config_path, cycle_index, cycle_total, due_tiers, simulate, outcome, error
		FROM runs
		WHERE outcome = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`)
	if err != nil {
		return fmt.Errorf("prepare last statement: %w", err)
	}

	return nil
}

// Record implements Store.
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return NewStorageError("record", errNilEntry)
	}

	applyDefaults(entry)

	tiersJSON, err := json.Marshal(entry.DueTiers)
	if err != nil {
		return NewStorageError("record", fmt.Errorf("marshal due tiers: %w", err))
	}

	_, err = s.recordStmt.ExecContext(ctx,
		entry.ID,
		entry.StartedAt.Unix(),
		entry.FinishedAt.Unix(),
		entry.ConfigPath,
		entry.CycleIndex,
		entry.CycleTotal,
		string(tiersJSON),
		boolToInt(entry.Simulate),
		string(entry.Outcome),
		entry.Error,
	)
	if err != nil {
		return NewStorageError("record", err)
	}
	return nil
}

// Recent implements Store.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.recentStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, NewStorageError("recent", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, NewStorageError("recent", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("recent", err)
	}
	return entries, nil
}

// LastCompleted implements Store.
func (s *SQLiteStore) LastCompleted(ctx context.Context) (*Entry, error) {
	rows, err := s.lastStmt.QueryContext(ctx, string(OutcomeCompleted))
	if err != nil {
		return nil, NewStorageError("last", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, NewStorageError("last", err)
		}
		return nil, nil
	}
	entry, err := scanEntry(rows)
	if err != nil {
		return nil, NewStorageError("last", err)
	}
	return entry, nil
}

// Close implements Store. Close is idempotent.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.recordStmt, s.recentStmt, s.lastStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// scanEntry reads one row into an Entry.
func scanEntry(rows *sql.Rows) (*Entry, error) {
	var (
		entry      Entry
		startedAt  int64
		finishedAt int64
		tiersJSON  string
		simulate   int
		outcome    string
	)

	if err := rows.Scan(
		&entry.ID,
		&startedAt,
		&finishedAt,
		&entry.ConfigPath,
		&entry.CycleIndex,
		&entry.CycleTotal,
		&tiersJSON,
		&simulate,
		&outcome,
		&entry.Error,
	); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	entry.StartedAt = time.Unix(startedAt, 0)
	entry.FinishedAt = time.Unix(finishedAt, 0)
	entry.Simulate = simulate != 0
	entry.Outcome = Outcome(outcome)

	if tiersJSON != "" {
		if err := json.Unmarshal([]byte(tiersJSON), &entry.DueTiers); err != nil {
			return nil, fmt.Errorf("unmarshal due tiers: %w", err)
		}
	}
	return &entry, nil
}

// applyDefaults fills in ID and timestamps for entries that lack them.
func applyDefaults(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now()
	if entry.StartedAt.IsZero() {
		entry.StartedAt = now
	}
	if entry.FinishedAt.IsZero() {
		entry.FinishedAt = now
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
