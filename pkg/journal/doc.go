// Package journal records rotation invocations.
//
// Every run of the scheduler produces one Entry, whether it completed,
// was simulated, was inhibited, or failed. Entries back the status and
// history commands, giving
// operators an answer to "when did the monthly tier last actually run"
// without grepping syslog.
//
// # Stores
//
// Two Store implementations are provided:
//
//   - SQLiteStore: durable storage in a single SQLite file (WAL mode,
//     single writer). The default.
//   - MemoryStore: in-memory, for tests and for running with the journal
//     disabled.
//
// # Basic Usage
//
//	store, err := journal.NewSQLiteStore("/var/lib/snapwheel/journal.db")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	entry := &journal.Entry{
//	    ConfigPath: "/etc/rsnapshot.conf",
//	    CycleIndex: 28,
//	    CycleTotal: 168,
//	    DueTiers:   []string{"monthly", "weekly", "daily"},
//	    Outcome:    journal.OutcomeCompleted,
//	}
//	if err := store.Record(ctx, entry); err != nil {
//	    return err
//	}
package journal
