package rsnapshot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"snapwheel-hq/snapwheel/pkg/rotation"
)

func TestParseConfig_Valid(t *testing.T) {
	input := strings.Join([]string{
		"# rsnapshot configuration",
		"config_version\t1.2",
		"",
		"snapshot_root\t/var/backups/snapshots/",
		"cmd_rsync\t/usr/bin/rsync",
		"retain\tdaily\t7",
		"retain\tweekly\t4",
		"retain\tmonthly\t6",
		"backup\t/home/\tlocalhost/",
	}, "\n")

	cfg, err := ParseConfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseConfig() failed: %v", err)
	}

	if cfg.SnapshotRoot != "/var/backups/snapshots" {
		t.Errorf("expected snapshot root %q, got %q", "/var/backups/snapshots", cfg.SnapshotRoot)
	}

	wantTiers := []rotation.Tier{
		{Name: "daily", Capacity: 7},
		{Name: "weekly", Capacity: 4},
		{Name: "monthly", Capacity: 6},
	}
	if !reflect.DeepEqual(cfg.Tiers, wantTiers) {
		t.Errorf("expected tiers %v, got %v", wantTiers, cfg.Tiers)
	}
}

func TestParseConfig_LegacyIntervalKeyword(t *testing.T) {
	input := "snapshot_root\t/backups\ninterval\thourly\t6\ninterval\tdaily\t7\n"

	cfg, err := ParseConfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseConfig() failed: %v", err)
	}

	wantTiers := []rotation.Tier{
		{Name: "hourly", Capacity: 6},
		{Name: "daily", Capacity: 7},
	}
	if !reflect.DeepEqual(cfg.Tiers, wantTiers) {
		t.Errorf("expected tiers %v, got %v", wantTiers, cfg.Tiers)
	}
}

func TestParseConfig_MultipleTabsActAsOne(t *testing.T) {
	input := "retain\t\tdaily\t\t\t7\n"

	cfg, err := ParseConfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseConfig() failed: %v", err)
	}
	if len(cfg.Tiers) != 1 || cfg.Tiers[0].Capacity != 7 {
		t.Errorf("expected one daily tier with capacity 7, got %v", cfg.Tiers)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "non-integer count",
			input:    "retain\tdaily\tseven\n",
			wantLine: 1,
			wantMsg:  "not an integer",
		},
		{
			name:     "zero count",
			input:    "retain\tdaily\t0\n",
			wantLine: 1,
			wantMsg:  "positive integer",
		},
		{
			name:     "negative count",
			input:    "retain\tdaily\t7\nretain\tweekly\t-1\n",
			wantLine: 2,
			wantMsg:  "positive integer",
		},
		{
			name:     "duplicate tier",
			input:    "retain\tdaily\t7\nretain\tdaily\t4\n",
			wantLine: 2,
			wantMsg:  "more than once",
		},
		{
			name:     "missing count",
			input:    "retain\tdaily\n",
			wantLine: 1,
			wantMsg:  "requires a tier name and a count",
		},
		{
			name:     "space separated fields",
			input:    "retain daily 7\n",
			wantLine: 1,
			wantMsg:  "separated by tabs",
		},
		{
			name:    "no tiers at all",
			input:   "snapshot_root\t/backups\n",
			wantMsg: "no retention tiers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected parsing to fail")
			}

			var confErr *ConfigError
			if !errors.As(err, &confErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if confErr.Line != tt.wantLine {
				t.Errorf("expected line %d, got %d", tt.wantLine, confErr.Line)
			}
			if !strings.Contains(confErr.Message, tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, confErr.Message)
			}
		})
	}
}

func TestParseConfig_IgnoresUnknownKeywords(t *testing.T) {
	input := strings.Join([]string{
		"verbose\t2",
		"lockfile\t/var/run/rsnapshot.pid",
		"retain\tdaily\t7",
		"exclude\t*.tmp",
	}, "\n")

	cfg, err := ParseConfig(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseConfig() failed: %v", err)
	}
	if len(cfg.Tiers) != 1 {
		t.Errorf("expected 1 tier, got %d", len(cfg.Tiers))
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rsnapshot.conf")
	content := "snapshot_root\t/backups\nretain\tdaily\t7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Path != path {
		t.Errorf("expected path %q recorded, got %q", path, cfg.Path)
	}
	if cfg.SnapshotRoot != "/backups" {
		t.Errorf("expected snapshot root %q, got %q", "/backups", cfg.SnapshotRoot)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.conf"))
	if err == nil {
		t.Fatal("expected missing file to fail")
	}

	var confErr *ConfigError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected error to unwrap to os.ErrNotExist")
	}
}

func TestLoadConfig_ErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rsnapshot.conf")
	if err := os.WriteFile(path, []byte("retain\tdaily\t0\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadConfig(path)
	var confErr *ConfigError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if confErr.Path != path {
		t.Errorf("expected error to carry path %q, got %q", path, confErr.Path)
	}
}

func TestCommand_Build(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		conf     string
		tier     string
		simulate bool
		want     string
	}{
		{
			name: "plain tier run",
			conf: "/etc/rsnapshot.conf",
			tier: "daily",
			want: "rsnapshot -c /etc/rsnapshot.conf daily",
		},
		{
			name:     "simulate adds -t before the tier",
			conf:     "/etc/rsnapshot.conf",
			tier:     "weekly",
			simulate: true,
			want:     "rsnapshot -c /etc/rsnapshot.conf -t weekly",
		},
		{
			name: "custom tool path",
			tool: "/opt/rsnapshot/bin/rsnapshot",
			conf: "/etc/rsnapshot.conf",
			tier: "monthly",
			want: "/opt/rsnapshot/bin/rsnapshot -c /etc/rsnapshot.conf monthly",
		},
		{
			name: "no config path",
			tier: "daily",
			want: "rsnapshot daily",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Command(tt.tool, tt.conf, tt.tier, tt.simulate)
			if cmd.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, cmd.String())
			}
			if cmd.Tier != tt.tier {
				t.Errorf("expected tier %q, got %q", tt.tier, cmd.Tier)
			}
		})
	}
}
