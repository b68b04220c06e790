package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"snapwheel-hq/snapwheel/pkg/cli"
	"snapwheel-hq/snapwheel/pkg/journal"
)

var historyFlags struct {
	limit  int
	format string
}

// historyTable renders journal entries as columns, newest first.
type historyTable struct {
	entries []*journal.Entry
}

func (t historyTable) Headers() []string {
	return []string{"STARTED", "INDEX", "OUTCOME", "TIERS", "ERROR"}
}

func (t historyTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.entries))
	for _, e := range t.entries {
		index := strconv.Itoa(e.CycleIndex)
		if e.CycleIndex < 0 {
			index = "-"
		}
		outcome := string(e.Outcome)
		if e.Simulate {
			outcome += " (simulate)"
		}
		rows = append(rows, []string{
			e.StartedAt.Format(time.RFC3339),
			index,
			outcome,
			strings.Join(e.DueTiers, ","),
			e.Error,
		})
	}
	return rows
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs from the journal",
	Long: `Show past invocations recorded in the run journal, newest first:
when each run started, the cycle index it rotated at, its outcome, and
the tiers that were due.

Examples:
  # The last twenty runs
  snapwheel history

  # Export a month of runs for a report
  snapwheel history --limit 200 --format csv > runs.csv`,
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
}

func showHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyFlags.format)
	if err != nil {
		return err
	}
	if historyFlags.limit < 1 {
		return cli.NewFlagError("--limit", "must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.IsEnabled() {
		return fmt.Errorf("run journal is disabled (journal.enabled in %s)", cfgFile)
	}

	store, err := journal.NewSQLiteStore(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), historyFlags.limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 && format == cli.FormatText {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, entries)
	}
	return cli.NewFormatter(format).FormatTo(os.Stdout, historyTable{entries: entries})
}
