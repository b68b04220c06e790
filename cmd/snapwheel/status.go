package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"snapwheel-hq/snapwheel/pkg/cli"
	"snapwheel-hq/snapwheel/pkg/cyclestate"
	"snapwheel-hq/snapwheel/pkg/journal"
	"snapwheel-hq/snapwheel/pkg/rotation"
	"snapwheel-hq/snapwheel/pkg/rsnapshot"
)

var statusFlags struct {
	rsnapshotConf string
	stateFile     string
	format        string
}

// statusResult is the machine-readable shape of snapwheel status.
type statusResult struct {
	StateFile     string    `json:"state_file"`
	CycleIndex    int       `json:"cycle_index"`
	CycleTotal    int       `json:"cycle_total"`
	NextIndex     int       `json:"next_index"`
	NextDue       []string  `json:"next_due"`
	LastRun       time.Time `json:"last_run,omitempty"`
	LastOutcome   string    `json:"last_outcome,omitempty"`
	LastDueTiers  []string  `json:"last_due_tiers,omitempty"`
	JournalActive bool      `json:"journal_active"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cycle position and what the next run would do",
	Long: `Show the persisted cycle position, the tiers due on the next
invocation, and the most recent completed run from the journal.

Examples:
  # Human-readable status
  snapwheel status

  # Status for scripts
  snapwheel status --format json`,
	RunE: showStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFlags.rsnapshotConf, "rsnapshot-conf", "", "override rsnapshot configuration path")
	statusCmd.Flags().StringVar(&statusFlags.stateFile, "state-file", "", "override cycle state file path")
	statusCmd.Flags().StringVar(&statusFlags.format, "format", "text", "output format: text, json")
}

func showStatus(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(statusFlags.format)
	if err != nil {
		return err
	}
	if format == cli.FormatCSV {
		return cli.NewFlagError("--format", "status does not support csv")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if statusFlags.rsnapshotConf != "" {
		cfg.Backup.Conf = statusFlags.rsnapshotConf
	}

	rsConf, err := rsnapshot.LoadConfig(cfg.Backup.Conf)
	if err != nil {
		return err
	}
	schedule, err := rotation.NewSchedule(rsConf.Tiers)
	if err != nil {
		return err
	}

	store := cyclestate.NewStore(resolveStatePath(cfg, cfg.Backup.Conf, statusFlags.stateFile))
	index, err := store.Load()
	if err != nil {
		return err
	}

	total := schedule.CycleTotal()
	next := (index + 1) % total
	result := statusResult{
		StateFile:  store.Path(),
		CycleIndex: index,
		CycleTotal: total,
		NextIndex:  next,
		NextDue:    rotation.Names(schedule.DueTiers(next)),
	}

	if cfg.Journal.IsEnabled() {
		if js, err := journal.NewSQLiteStore(cfg.Journal.Path); err == nil {
			defer js.Close()
			result.JournalActive = true
			if last, err := js.LastCompleted(context.Background()); err == nil && last != nil {
				result.LastRun = last.FinishedAt
				result.LastOutcome = string(last.Outcome)
				result.LastDueTiers = last.DueTiers
			}
		}
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
	}

	fmt.Printf("State file:   %s\n", result.StateFile)
	fmt.Printf("Cycle index:  %d of %d\n", result.CycleIndex, result.CycleTotal)
	fmt.Printf("Next index:   %d\n", result.NextIndex)
	fmt.Printf("Next due:     %s\n", strings.Join(result.NextDue, ", "))
	if !result.LastRun.IsZero() {
		fmt.Printf("Last run:     %s (%s: %s)\n",
			result.LastRun.Format(time.RFC3339),
			result.LastOutcome,
			strings.Join(result.LastDueTiers, ", "))
	}
	return nil
}
