package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics recorder.
type Config struct {
	// Enabled turns metric recording on. When false every Recorder
	// method is a no-op.
	Enabled bool

	// Namespace is the metric name prefix.
	// Default: "snapwheel"
	Namespace string

	// TextfilePath is where Write puts the textfile for node_exporter's
	// textfile collector. Empty disables writing.
	TextfilePath string
}

// Recorder collects rotation run metrics into its own Prometheus registry
// and writes them out as a textfile.
type Recorder struct {
	config   *Config
	registry *prometheus.Registry

	cycleIndex      prometheus.Gauge
	cycleTotal      prometheus.Gauge
	lastRunStamp    prometheus.Gauge
	lastRunSuccess  prometheus.Gauge
	lastRunDuration prometheus.Gauge
	dueTierCount    prometheus.Gauge
	tierDueStamp    *prometheus.GaugeVec
}

// NewRecorder creates a metrics recorder with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used so
// snapwheel's metrics never mix with anything else in the process.
func NewRecorder(cfg *Config, registry *prometheus.Registry) *Recorder {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "snapwheel"
	}

	r := &Recorder{
		config:   cfg,
		registry: registry,

		cycleIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "cycle_index",
			Help:      "Position within the rotation cycle after the last run.",
		}),
		cycleTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "cycle_total",
			Help:      "Full rotation period (product of all tier capacities).",
		}),
		lastRunStamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		lastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_run_success",
			Help:      "Whether the last run succeeded (1) or failed (0).",
		}),
		lastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last run in seconds.",
		}),
		dueTierCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "due_tiers",
			Help:      "Number of tiers due in the last run.",
		}),
		tierDueStamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "tier_last_due_timestamp_seconds",
			Help:      "Unix time each tier was last due.",
		}, []string{"tier"}),
	}

	registry.MustRegister(
		r.cycleIndex,
		r.cycleTotal,
		r.lastRunStamp,
		r.lastRunSuccess,
		r.lastRunDuration,
		r.dueTierCount,
		r.tierDueStamp,
	)

	return r
}

// RecordRun records the outcome of one rotation run.
func (r *Recorder) RecordRun(index, total int, dueTiers []string, success bool, duration time.Duration) {
	if !r.config.Enabled {
		return
	}

	now := float64(time.Now().Unix())

	r.cycleIndex.Set(float64(index))
	r.cycleTotal.Set(float64(total))
	r.lastRunStamp.Set(now)
	r.lastRunDuration.Set(duration.Seconds())
	r.dueTierCount.Set(float64(len(dueTiers)))

	if success {
		r.lastRunSuccess.Set(1)
	} else {
		r.lastRunSuccess.Set(0)
	}

	for _, tier := range dueTiers {
		r.tierDueStamp.WithLabelValues(tier).Set(now)
	}
}

// Write renders the registry to the configured textfile. The write is
// atomic (temp file + rename) so the collector never reads a partial file.
func (r *Recorder) Write() error {
	if !r.config.Enabled || r.config.TextfilePath == "" {
		return nil
	}
	return prometheus.WriteToTextfile(r.config.TextfilePath, r.registry)
}

// Registry returns the recorder's Prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
