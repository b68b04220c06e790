package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"snapwheel-hq/snapwheel/pkg/inhibit"
	"snapwheel-hq/snapwheel/pkg/journal"
	"snapwheel-hq/snapwheel/pkg/rotation"
	"snapwheel-hq/snapwheel/pkg/rsnapshot"
	"snapwheel-hq/snapwheel/pkg/runner"
	"snapwheel-hq/snapwheel/pkg/telemetry/metrics"
)

// StateStore is the persisted cycle counter the scheduler reads and
// advances. *cyclestate.Store satisfies it.
type StateStore interface {
	// Load returns the current cycle index, 0 when no state exists yet.
	Load() (int, error)
	// Save persists a new cycle index atomically.
	Save(index int) error
	// Path returns the location of the persisted state.
	Path() string
}

// InhibitChecker decides whether an invocation should be skipped.
// *inhibit.Checker satisfies it.
type InhibitChecker interface {
	Check(root, finestTier string) error
}

// LinkMaintainer refreshes convenience symlinks after a completed
// rotation. *linkfarm.Farm satisfies it.
type LinkMaintainer interface {
	Maintain(tiers []string) error
}

// Config controls how a Scheduler invokes the snapshot tool.
type Config struct {
	// Tool is the snapshot executable to invoke. Default: "rsnapshot".
	Tool string

	// Simulate computes the next index and due tiers without persisting
	// state, and passes the tool's dry-run flag through.
	Simulate bool

	// SkipInhibit bypasses the recent-snapshot inhibition check.
	SkipInhibit bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Tool: rsnapshot.DefaultTool,
	}
}

// Deps are the collaborators a Scheduler drives. State and Runner are
// required; the rest may be nil to disable the corresponding concern.
type Deps struct {
	State   StateStore
	Inhibit InhibitChecker
	Runner  runner.Runner
	Journal journal.Store
	Metrics *metrics.Recorder
	Links   LinkMaintainer
	Logger  *slog.Logger
}

// Result reports what a single invocation did.
type Result struct {
	// Index is the post-increment cycle index the invocation ran at.
	Index int

	// Total is the cycle length the index wraps within.
	Total int

	// Due lists the due tier names, coarsest first.
	Due []string

	// Completed lists the tiers whose external invocation finished.
	Completed []string

	// Inhibited is true when the invocation was skipped because the
	// newest snapshot was too recent. Nothing was mutated.
	Inhibited bool

	// Reason carries the human-readable inhibition message when
	// Inhibited is true.
	Reason string

	// Simulated is true when state persistence and post-actions were
	// suppressed.
	Simulated bool

	// Duration is the wall-clock time the invocation took.
	Duration time.Duration
}

// Scheduler coordinates one rotation invocation over an rsnapshot
// configuration and a retention schedule.
type Scheduler struct {
	conf     *rsnapshot.Config
	schedule *rotation.Schedule
	deps     Deps
	config   *Config
	logger   *slog.Logger
}

// New creates a Scheduler. A nil cfg uses DefaultConfig; a nil
// deps.Logger falls back to slog.Default.
func New(conf *rsnapshot.Config, schedule *rotation.Schedule, deps Deps, cfg *Config) (*Scheduler, error) {
	if conf == nil {
		return nil, fmt.Errorf("rsnapshot config cannot be nil")
	}
	if schedule == nil {
		return nil, fmt.Errorf("retention schedule cannot be nil")
	}
	if deps.State == nil {
		return nil, fmt.Errorf("state store cannot be nil")
	}
	if deps.Runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Tool == "" {
		cfg.Tool = rsnapshot.DefaultTool
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		conf:     conf,
		schedule: schedule,
		deps:     deps,
		config:   cfg,
		logger:   logger.With("component", "scheduler"),
	}, nil
}

// Run executes one invocation of the state machine. It returns a
// Result describing what happened alongside any fatal error. An
// inhibited invocation returns a Result with Inhibited set and a nil
// error.
func (s *Scheduler) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	total := s.schedule.CycleTotal()
	res := &Result{
		Total:     total,
		Simulated: s.config.Simulate,
	}

	// LOAD_STATE. The index is read exactly once per invocation;
	// corruption is fatal before anything else happens.
	loaded, err := s.deps.State.Load()
	if err != nil {
		s.logger.Error("cycle state unreadable", "path", s.deps.State.Path(), "error", err)
		s.journal(ctx, -1, nil, journal.OutcomeFailed, err)
		return nil, err
	}

	// CHECK_INHIBITION happens before the index advances so a skipped
	// invocation leaves no trace in the counter.
	if !s.config.SkipInhibit && s.deps.Inhibit != nil {
		err := s.deps.Inhibit.Check(s.conf.SnapshotRoot, s.schedule.Finest().Name)
		var inhibited *inhibit.Inhibited
		switch {
		case err == nil:
		case errors.As(err, &inhibited):
			res.Inhibited = true
			res.Reason = inhibited.Error()
			res.Duration = time.Since(started)
			s.logger.Info("invocation inhibited",
				"tier", inhibited.Tier,
				"age", inhibited.Age,
				"window", inhibited.Window)
			s.journal(ctx, -1, nil, journal.OutcomeInhibited, err)
			return res, nil
		default:
			s.logger.Error("snapshot root check failed", "root", s.conf.SnapshotRoot, "error", err)
			s.journal(ctx, -1, nil, journal.OutcomeFailed, err)
			return nil, err
		}
	}

	// ADVANCE_INDEX. The new index is persisted before any tier runs so
	// an interrupted rotation is never replayed.
	index := (loaded + 1) % total
	if !s.config.Simulate {
		if err := s.deps.State.Save(index); err != nil {
			s.logger.Error("failed to persist cycle state", "path", s.deps.State.Path(), "error", err)
			s.journal(ctx, -1, nil, journal.OutcomeFailed, err)
			return nil, err
		}
	}
	res.Index = index

	// COMPUTE_DUE_TIERS from the post-increment index.
	due := s.schedule.DueTiers(index)
	res.Due = rotation.Names(due)
	s.logger.Info("tiers due",
		"cycle_index", index,
		"cycle_total", total,
		"due", res.Due,
		"simulate", s.config.Simulate)

	// INVOKE_EXTERNAL, coarsest tier first. The first failure abandons
	// the remaining tiers; completed ones stand.
	for _, tier := range due {
		cmd := rsnapshot.Command(s.config.Tool, s.conf.Path, tier.Name, s.config.Simulate)
		if err := s.deps.Runner.Run(ctx, cmd); err != nil {
			res.Duration = time.Since(started)
			s.logger.Error("tier invocation failed",
				"tier", tier.Name,
				"completed", res.Completed,
				"error", err)
			s.journal(ctx, index, res.Due, journal.OutcomeFailed, err)
			s.metrics(res, false)
			return res, err
		}
		res.Completed = append(res.Completed, tier.Name)
	}
	res.Duration = time.Since(started)

	// POST_ACTIONS. None of these can fail a completed rotation.
	outcome := journal.OutcomeCompleted
	if s.config.Simulate {
		outcome = journal.OutcomeSimulated
	}
	s.journal(ctx, index, res.Due, outcome, nil)
	s.links()
	s.metrics(res, true)

	s.logger.Info("rotation complete",
		"cycle_index", index,
		"completed", res.Completed,
		"duration", res.Duration,
		"simulate", s.config.Simulate)
	return res, nil
}

// Plan computes the indices and due tiers for the next steps without
// touching persisted state.
func (s *Scheduler) Plan(steps int) ([]Step, error) {
	loaded, err := s.deps.State.Load()
	if err != nil {
		return nil, err
	}
	total := s.schedule.CycleTotal()
	plan := make([]Step, 0, steps)
	index := loaded
	for i := 0; i < steps; i++ {
		index = (index + 1) % total
		plan = append(plan, Step{
			Index: index,
			Due:   rotation.Names(s.schedule.DueTiers(index)),
		})
	}
	return plan, nil
}

// Step is one future invocation in a plan.
type Step struct {
	Index int      `json:"index"`
	Due   []string `json:"due"`
}

// journal records the run outcome, logging rather than failing when the
// store misbehaves. A negative index means the counter never advanced.
func (s *Scheduler) journal(ctx context.Context, index int, due []string, outcome journal.Outcome, runErr error) {
	if s.deps.Journal == nil {
		return
	}
	entry := &journal.Entry{
		ConfigPath: s.conf.Path,
		CycleIndex: index,
		CycleTotal: s.schedule.CycleTotal(),
		DueTiers:   due,
		Simulate:   s.config.Simulate,
		Outcome:    outcome,
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if err := s.deps.Journal.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to journal run", "error", err)
	}
}

// links refreshes the symlink farm after a completed rotation. Simulate
// runs leave the farm untouched.
func (s *Scheduler) links() {
	if s.deps.Links == nil || s.config.Simulate {
		return
	}
	if err := s.deps.Links.Maintain(rotation.Names(s.schedule.Tiers())); err != nil {
		s.logger.Warn("failed to refresh snapshot links", "error", err)
	}
}

// metrics records run gauges and flushes the textfile when configured.
// Simulate runs never overwrite gauges from real rotations.
func (s *Scheduler) metrics(res *Result, success bool) {
	if s.deps.Metrics == nil || s.config.Simulate {
		return
	}
	s.deps.Metrics.RecordRun(res.Index, res.Total, res.Due, success, res.Duration)
	if err := s.deps.Metrics.Write(); err != nil {
		s.logger.Warn("failed to write metrics textfile", "error", err)
	}
}
