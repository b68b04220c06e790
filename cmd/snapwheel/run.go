package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"snapwheel-hq/snapwheel/pkg/cli"
	"snapwheel-hq/snapwheel/pkg/cyclestate"
	"snapwheel-hq/snapwheel/pkg/inhibit"
	"snapwheel-hq/snapwheel/pkg/journal"
	"snapwheel-hq/snapwheel/pkg/linkfarm"
	"snapwheel-hq/snapwheel/pkg/rotation"
	"snapwheel-hq/snapwheel/pkg/rsnapshot"
	"snapwheel-hq/snapwheel/pkg/runner"
	"snapwheel-hq/snapwheel/pkg/scheduler"
	"snapwheel-hq/snapwheel/pkg/telemetry/metrics"
)

var runFlags struct {
	rsnapshotConf string
	stateFile     string
	tool          string
	inhibitHours  int
	simulate      bool
	skipInhibit   bool
	skipLinks     bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance the cycle and invoke rsnapshot for every due tier",
	Long: `Advance the persistent cycle counter by one and invoke rsnapshot for
every retention tier due at the new position, coarsest tier first.

The counter is persisted before rsnapshot runs, so an interrupted
rotation skips a step rather than replaying one. When the newest
snapshot of the most frequent tier is younger than the inhibition
window, the whole invocation is skipped and nothing is touched.

Designed to be called from a single cron entry:

  0 */4 * * *  root  snapwheel run --quiet

Examples:
  # Advance the cycle and rotate whatever is due
  snapwheel run

  # Preview the next invocation without changing anything
  snapwheel run --simulate

  # Force a rotation despite a recent snapshot
  snapwheel run --skip-inhibit

  # Use an alternate rsnapshot configuration
  snapwheel run --rsnapshot-conf /etc/rsnapshot/offsite.conf`,
	RunE: runRotation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.rsnapshotConf, "rsnapshot-conf", "", "override rsnapshot configuration path")
	runCmd.Flags().StringVar(&runFlags.stateFile, "state-file", "", "override cycle state file path")
	runCmd.Flags().StringVar(&runFlags.tool, "tool", "", "override backup tool executable")
	runCmd.Flags().IntVar(&runFlags.inhibitHours, "inhibit-hours", -1, "override inhibition window in hours (0 disables)")
	runCmd.Flags().BoolVarP(&runFlags.simulate, "simulate", "n", false, "compute due tiers without persisting state; passes rsnapshot's test flag")
	runCmd.Flags().BoolVar(&runFlags.skipInhibit, "skip-inhibit", false, "rotate even when a recent snapshot would inhibit")
	runCmd.Flags().BoolVar(&runFlags.skipLinks, "skip-links", false, "skip symlink upkeep after rotation")
}

func runRotation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.rsnapshotConf != "" {
		cfg.Backup.Conf = runFlags.rsnapshotConf
	}
	if runFlags.tool != "" {
		cfg.Backup.Tool = runFlags.tool
	}
	if runFlags.inhibitHours >= 0 {
		cfg.Inhibit.Hours = &runFlags.inhibitHours
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	rsConf, err := rsnapshot.LoadConfig(cfg.Backup.Conf)
	if err != nil {
		return err
	}
	schedule, err := rotation.NewSchedule(rsConf.Tiers)
	if err != nil {
		return err
	}

	deps := scheduler.Deps{
		State:   cyclestate.NewStore(resolveStatePath(cfg, cfg.Backup.Conf, runFlags.stateFile)),
		Inhibit: inhibit.NewChecker(cfg.Inhibit.Window(), logger),
		Runner:  runner.NewExecRunner(logger),
		Logger:  logger,
	}

	if cfg.Journal.IsEnabled() {
		store, err := journal.NewSQLiteStore(cfg.Journal.Path)
		if err != nil {
			// A broken journal must not block backups.
			logger.Warn("run journal unavailable", "path", cfg.Journal.Path, "error", err)
		} else {
			defer store.Close()
			deps.Journal = store
		}
	}

	if cfg.Telemetry.Metrics.Enabled {
		deps.Metrics = metrics.NewRecorder(&metrics.Config{
			Enabled:      true,
			Namespace:    cfg.Telemetry.Metrics.Namespace,
			TextfilePath: cfg.Telemetry.Metrics.TextfilePath,
		}, nil)
	}

	if cfg.Links.Enabled && !runFlags.skipLinks && rsConf.SnapshotRoot != "" {
		deps.Links = linkfarm.New(rsConf.SnapshotRoot, cfg.Links.Dated, logger)
	}

	sched, err := scheduler.New(rsConf, schedule, deps, &scheduler.Config{
		Tool:        cfg.Backup.Tool,
		Simulate:    runFlags.simulate,
		SkipInhibit: runFlags.skipInhibit,
	})
	if err != nil {
		return err
	}

	ctx := cli.SetupSignalHandler()
	res, err := sched.Run(ctx)
	if err != nil {
		return err
	}

	if res.Inhibited {
		if !quiet {
			fmt.Printf("Skipped: %s\n", res.Reason)
		}
		return nil
	}

	if quiet {
		return nil
	}
	if res.Simulated {
		fmt.Printf("Simulate: cycle index would advance to %d of %d\n", res.Index, res.Total)
		fmt.Printf("Simulate: due tiers: %s\n", strings.Join(res.Due, ", "))
		return nil
	}
	fmt.Printf("✓ Cycle advanced to %d of %d\n", res.Index, res.Total)
	fmt.Printf("✓ Rotated tiers: %s (%.1fs)\n", strings.Join(res.Completed, ", "), res.Duration.Seconds())
	return nil
}
