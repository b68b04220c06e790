package config

import (
	"testing"
	"time"
)

func TestApplyDefaultsOnEmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Backup.Tool != DefaultBackupTool {
		t.Errorf("expected tool %q, got %q", DefaultBackupTool, cfg.Backup.Tool)
	}
	if cfg.Backup.Conf != DefaultBackupConf {
		t.Errorf("expected conf %q, got %q", DefaultBackupConf, cfg.Backup.Conf)
	}
	if cfg.State.Dir != DefaultStateDir {
		t.Errorf("expected state dir %q, got %q", DefaultStateDir, cfg.State.Dir)
	}
	if cfg.State.File != "" {
		t.Errorf("expected no explicit state file, got %q", cfg.State.File)
	}
	if cfg.Inhibit.Hours == nil || *cfg.Inhibit.Hours != DefaultInhibitHours {
		t.Errorf("expected inhibit hours %d, got %v", DefaultInhibitHours, cfg.Inhibit.Hours)
	}
	if !cfg.Journal.IsEnabled() {
		t.Error("expected journaling enabled by default")
	}
	if cfg.Journal.Path != DefaultJournalPath {
		t.Errorf("expected journal path %q, got %q", DefaultJournalPath, cfg.Journal.Path)
	}
	if cfg.Links.Enabled || cfg.Links.Dated {
		t.Error("expected link upkeep disabled by default")
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("expected level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.Format != DefaultLoggingFormat {
		t.Errorf("expected format %q, got %q", DefaultLoggingFormat, cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled by default")
	}
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("expected namespace %q, got %q", DefaultMetricsNamespace, cfg.Telemetry.Metrics.Namespace)
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	zero := 0
	disabled := false
	cfg := &Config{}
	cfg.Backup.Tool = "/opt/rsnapshot/bin/rsnapshot"
	cfg.Backup.Conf = "/etc/rsnapshot/offsite.conf"
	cfg.State.Dir = "/tmp/snapwheel"
	cfg.Inhibit.Hours = &zero
	cfg.Journal.Enabled = &disabled

	ApplyDefaults(cfg)

	if cfg.Backup.Tool != "/opt/rsnapshot/bin/rsnapshot" {
		t.Errorf("tool overwritten: %q", cfg.Backup.Tool)
	}
	if cfg.Backup.Conf != "/etc/rsnapshot/offsite.conf" {
		t.Errorf("conf overwritten: %q", cfg.Backup.Conf)
	}
	if cfg.State.Dir != "/tmp/snapwheel" {
		t.Errorf("state dir overwritten: %q", cfg.State.Dir)
	}
	if *cfg.Inhibit.Hours != 0 {
		t.Errorf("explicit zero inhibit hours overwritten: %d", *cfg.Inhibit.Hours)
	}
	if cfg.Journal.IsEnabled() {
		t.Error("explicit journal disable overwritten")
	}
}

func TestApplyDefaultsIsIdempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	first := *cfg
	ApplyDefaults(cfg)

	if *cfg.Inhibit.Hours != *first.Inhibit.Hours {
		t.Error("inhibit hours changed on second application")
	}
	if cfg.Backup.Tool != first.Backup.Tool || cfg.Journal.Path != first.Journal.Path {
		t.Error("defaults changed on second application")
	}
}

func TestInhibitWindow(t *testing.T) {
	five := 5
	zero := 0

	tests := []struct {
		name string
		cfg  InhibitConfig
		want time.Duration
	}{
		{name: "unset uses default", cfg: InhibitConfig{}, want: DefaultInhibitHours * time.Hour},
		{name: "explicit hours", cfg: InhibitConfig{Hours: &five}, want: 5 * time.Hour},
		{name: "explicit zero disables", cfg: InhibitConfig{Hours: &zero}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Window(); got != tt.want {
				t.Errorf("expected window %v, got %v", tt.want, got)
			}
		})
	}
}
