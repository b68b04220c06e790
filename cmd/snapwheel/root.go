package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"snapwheel-hq/snapwheel/pkg/config"
	"snapwheel-hq/snapwheel/pkg/cyclestate"
	"snapwheel-hq/snapwheel/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "snapwheel",
	Short: "snapwheel - retention cycle scheduler for rsnapshot",
	Long: `snapwheel runs rsnapshot retention tiers from a single cron entry.

Instead of one cron line per tier, a persistent cycle counter decides
which tiers are due on each invocation. Tier order and counts come
straight from the rsnapshot configuration's retain lines, so the two
tools can never disagree about the schedule.

For more information, visit: https://github.com/snapwheel-hq/snapwheel`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "/etc/snapwheel.yaml", "snapwheel config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress everything below warnings")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads the snapwheel configuration with environment overrides.
func loadConfig() (*config.Config, error) {
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// newLogger builds the logger for one command invocation, letting the
// --verbose and --quiet flags override the configured level.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "error"
	}
	return logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
}

// resolveStatePath decides where the cycle state file lives: an explicit
// flag wins, then the configured file, then a path derived from the
// rsnapshot configuration path inside the state directory.
func resolveStatePath(cfg *config.Config, rsnapshotConf, flagOverride string) string {
	if flagOverride != "" {
		return flagOverride
	}
	if cfg.State.File != "" {
		return cfg.State.File
	}
	return cyclestate.DefaultPath(cfg.State.Dir, rsnapshotConf)
}
