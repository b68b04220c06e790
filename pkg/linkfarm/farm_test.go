package linkfarm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func makeDir(t *testing.T, root, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("failed to set mtime on %s: %v", name, err)
	}
}

func TestFarm_UpdateLatest(t *testing.T) {
	root := t.TempDir()
	makeDir(t, root, "daily.0", time.Hour)

	farm := New(root, false, nil)
	if err := farm.UpdateLatest("daily"); err != nil {
		t.Fatalf("UpdateLatest() failed: %v", err)
	}

	target, err := os.Readlink(filepath.Join(root, "latest"))
	if err != nil {
		t.Fatalf("Readlink() failed: %v", err)
	}
	if target != "daily.0" {
		t.Errorf("expected latest -> daily.0, got %q", target)
	}
}

func TestFarm_UpdateLatestReplacesStaleLink(t *testing.T) {
	root := t.TempDir()
	makeDir(t, root, "daily.0", time.Hour)

	link := filepath.Join(root, "latest")
	if err := os.Symlink("hourly.0", link); err != nil {
		t.Fatalf("failed to plant stale link: %v", err)
	}

	farm := New(root, false, nil)
	if err := farm.UpdateLatest("daily"); err != nil {
		t.Fatalf("UpdateLatest() failed: %v", err)
	}

	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("Readlink() failed: %v", err)
	}
	if target != "daily.0" {
		t.Errorf("expected stale link replaced with daily.0, got %q", target)
	}
}

func TestFarm_UpdateLatestMissingSnapshot(t *testing.T) {
	farm := New(t.TempDir(), false, nil)
	if err := farm.UpdateLatest("daily"); err == nil {
		t.Error("expected missing daily.0 to fail")
	}
}

func TestFarm_RebuildDated(t *testing.T) {
	root := t.TempDir()
	makeDir(t, root, "daily.0", 1*time.Hour)
	makeDir(t, root, "daily.1", 25*time.Hour)
	makeDir(t, root, "weekly.0", 7*24*time.Hour)
	makeDir(t, root, "_delete.1234", time.Hour) // rsnapshot scratch dir, not a tier

	farm := New(root, true, nil)
	if err := farm.RebuildDated([]string{"daily", "weekly"}); err != nil {
		t.Fatalf("RebuildDated() failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, DatedDirName))
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 links, got %d", len(entries))
	}

	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 {
			t.Errorf("expected %q to be a symlink", entry.Name())
		}
		if strings.Contains(entry.Name(), "_delete") {
			t.Errorf("scratch directory leaked into the farm: %q", entry.Name())
		}
	}
}

func TestFarm_RebuildDatedDropsStaleLinks(t *testing.T) {
	root := t.TempDir()
	makeDir(t, root, "daily.0", time.Hour)

	farmDir := filepath.Join(root, DatedDirName)
	if err := os.MkdirAll(farmDir, 0o755); err != nil {
		t.Fatalf("failed to create farm dir: %v", err)
	}
	stale := filepath.Join(farmDir, "2001-01-01-0000-daily.9")
	if err := os.Symlink("../daily.9", stale); err != nil {
		t.Fatalf("failed to plant stale link: %v", err)
	}

	farm := New(root, true, nil)
	if err := farm.RebuildDated([]string{"daily"}); err != nil {
		t.Fatalf("RebuildDated() failed: %v", err)
	}

	if _, err := os.Lstat(stale); !os.IsNotExist(err) {
		t.Error("expected stale link to be removed")
	}

	entries, err := os.ReadDir(farmDir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly 1 rebuilt link, got %d", len(entries))
	}
}

func TestFarm_Maintain(t *testing.T) {
	root := t.TempDir()
	makeDir(t, root, "daily.0", time.Hour)
	makeDir(t, root, "weekly.0", 7*24*time.Hour)

	farm := New(root, true, nil)
	if err := farm.Maintain([]string{"daily", "weekly"}); err != nil {
		t.Fatalf("Maintain() failed: %v", err)
	}

	if _, err := os.Readlink(filepath.Join(root, "latest")); err != nil {
		t.Errorf("expected latest link: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, DatedDirName)); err != nil {
		t.Errorf("expected by-date dir: %v", err)
	}
}

func TestIsSnapshotDir(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want bool
	}{
		{name: "finest tier", dir: "daily.0", want: true},
		{name: "deep rotation", dir: "monthly.11", want: true},
		{name: "unknown tier", dir: "hourly.0", want: false},
		{name: "no number", dir: "daily.", want: false},
		{name: "not numeric", dir: "daily.old", want: false},
		{name: "plain dir", dir: "lost+found", want: false},
	}

	tiers := []string{"daily", "weekly", "monthly"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSnapshotDir(tt.dir, tiers); got != tt.want {
				t.Errorf("isSnapshotDir(%q) = %v, expected %v", tt.dir, got, tt.want)
			}
		})
	}
}
