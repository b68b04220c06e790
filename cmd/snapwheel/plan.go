package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"snapwheel-hq/snapwheel/pkg/cli"
	"snapwheel-hq/snapwheel/pkg/cyclestate"
	"snapwheel-hq/snapwheel/pkg/rotation"
	"snapwheel-hq/snapwheel/pkg/rsnapshot"
	"snapwheel-hq/snapwheel/pkg/runner"
	"snapwheel-hq/snapwheel/pkg/scheduler"
)

var planFlags struct {
	rsnapshotConf string
	stateFile     string
	steps         int
	format        string
}

// planTable renders planned invocations as INDEX/DUE columns.
type planTable struct {
	steps []scheduler.Step
}

func (t planTable) Headers() []string {
	return []string{"INDEX", "DUE"}
}

func (t planTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.steps))
	for _, s := range t.steps {
		rows = append(rows, []string{strconv.Itoa(s.Index), strings.Join(s.Due, ",")})
	}
	return rows
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show which tiers the next invocations will rotate",
	Long: `Show the cycle indices and due tiers of the upcoming invocations,
without touching the persisted state.

Examples:
  # The next seven invocations
  snapwheel plan

  # A whole cycle, machine readable
  snapwheel plan --steps 168 --format json`,
	RunE: showPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planFlags.rsnapshotConf, "rsnapshot-conf", "", "override rsnapshot configuration path")
	planCmd.Flags().StringVar(&planFlags.stateFile, "state-file", "", "override cycle state file path")
	planCmd.Flags().IntVar(&planFlags.steps, "steps", 7, "number of future invocations to show")
	planCmd.Flags().StringVar(&planFlags.format, "format", "text", "output format: text, json, csv")
}

func showPlan(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(planFlags.format)
	if err != nil {
		return err
	}
	if planFlags.steps < 1 {
		return cli.NewFlagError("--steps", "must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if planFlags.rsnapshotConf != "" {
		cfg.Backup.Conf = planFlags.rsnapshotConf
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

	sched, err := scheduler.New(rsConf, schedule, scheduler.Deps{
		State:  cyclestate.NewStore(resolveStatePath(cfg, cfg.Backup.Conf, planFlags.stateFile)),
		Runner: runner.NewExecRunner(logger),
		Logger: logger,
	}, nil)
	if err != nil {
		return err
	}

	steps, err := sched.Plan(planFlags.steps)
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, steps)
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, planTable{steps: steps}); err != nil {
		return err
	}
	if format == cli.FormatText {
		fmt.Printf("\nCycle length: %d invocations\n", schedule.CycleTotal())
	}
	return nil
}
