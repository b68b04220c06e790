// Package telemetry provides observability for snapwheel.
//
// # Components
//
//   - logging: structured logging via log/slog with console, text, and
//     JSON output
//   - metrics: Prometheus gauges written through the node_exporter
//     textfile collector
//
// snapwheel is a short-lived process driven by cron, so there is no
// metrics endpoint and no tracing; each run writes its gauges to a
// .prom textfile on the way out and logs to stderr.
package telemetry
