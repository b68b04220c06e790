// Package metrics exposes rotation run metrics for Prometheus.
//
// # Overview
//
// snapwheel is a one-shot process, so there is no endpoint to scrape.
// Instead, metrics are written to a textfile after each run and picked up
// by node_exporter's textfile collector, the standard route for
// cron-driven jobs.
//
// # Metrics
//
//   - snapwheel_cycle_index: position within the rotation after this run
//   - snapwheel_cycle_total: full rotation period
//   - snapwheel_last_run_timestamp_seconds: when the run finished
//   - snapwheel_last_run_success: 1 on success, 0 on failure
//   - snapwheel_last_run_duration_seconds: how long the run took
//   - snapwheel_due_tiers: number of tiers due in this run
//   - snapwheel_tier_last_due_timestamp_seconds{tier}: per-tier last due time
//
// # Usage
//
//	recorder := metrics.NewRecorder(&metrics.Config{
//	    Enabled:      true,
//	    TextfilePath: "/var/lib/node_exporter/textfile/snapwheel.prom",
//	}, nil)
//
//	recorder.RecordRun(res.Index, res.Total, res.Due, true, res.Duration)
//	if err := recorder.Write(); err != nil {
//	    logger.Warn("failed to write metrics textfile", "error", err)
//	}
package metrics
