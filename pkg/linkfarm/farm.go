package linkfarm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LatestName is the name of the newest-snapshot link under the root.
const LatestName = "latest"

// DatedDirName is the directory holding date-named links under the root.
const DatedDirName = "by-date"

// Farm maintains symlinks under a snapshot root.
type Farm struct {
	root   string
	dated  bool
	logger *slog.Logger
}

// New creates a Farm for the given snapshot root. With dated set the
// by-date farm is rebuilt alongside the latest link. A nil logger falls
// back to the process default.
func New(root string, dated bool, logger *slog.Logger) *Farm {
	if logger == nil {
		logger = slog.Default()
	}
	return &Farm{
		root:   root,
		dated:  dated,
		logger: logger.With("component", "linkfarm"),
	}
}

// Maintain refreshes all links for a schedule whose tiers are listed in
// declaration order (finest first).
func (f *Farm) Maintain(tiers []string) error {
	if len(tiers) == 0 {
		return fmt.Errorf("no tiers to link")
	}
	if err := f.UpdateLatest(tiers[0]); err != nil {
		return err
	}
	if f.dated {
		return f.RebuildDated(tiers)
	}
	return nil
}

// UpdateLatest points <root>/latest at the newest snapshot of the finest
// tier. The link is replaced atomically and uses a relative target so it
// survives a move of the whole root.
func (f *Farm) UpdateLatest(finestTier string) error {
	target := finestTier + ".0"
	if _, err := os.Stat(filepath.Join(f.root, target)); err != nil {
		return fmt.Errorf("newest snapshot %s: %w", target, err)
	}

	link := filepath.Join(f.root, LatestName)
	if err := replaceSymlink(target, link); err != nil {
		return err
	}

	f.logger.Debug("updated latest link", "target", target)
	return nil
}

// RebuildDated recreates <root>/by-date from the snapshot directories
// currently present: one link per <tier>.<n> directory, named from the
// directory's modification time.
func (f *Farm) RebuildDated(tiers []string) error {
	farmDir := filepath.Join(f.root, DatedDirName)
	if err := os.MkdirAll(farmDir, 0o755); err != nil {
		return fmt.Errorf("create by-date directory: %w", err)
	}

	// Drop the old links; rotation renumbered their targets.
	old, err := os.ReadDir(farmDir)
	if err != nil {
		return fmt.Errorf("read by-date directory: %w", err)
	}
	for _, entry := range old {
		if entry.Type()&os.ModeSymlink != 0 {
			os.Remove(filepath.Join(farmDir, entry.Name()))
		}
	}

	entries, err := os.ReadDir(f.root)
	if err != nil {
		return fmt.Errorf("read snapshot root: %w", err)
	}

	linked := 0
	for _, entry := range entries {
		if !entry.IsDir() || !isSnapshotDir(entry.Name(), tiers) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		name := info.ModTime().Format("2006-01-02-1504") + "-" + entry.Name()
		target := filepath.Join("..", entry.Name())
		if err := replaceSymlink(target, filepath.Join(farmDir, name)); err != nil {
			return err
		}
		linked++
	}

	f.logger.Debug("rebuilt by-date farm", "links", linked)
	return nil
}

// replaceSymlink atomically replaces link with a symlink to target.
func replaceSymlink(target, link string) error {
	tmp := link + ".tmp"
	os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("create symlink %s: %w", link, err)
	}
	if err := os.Rename(tmp, link); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace symlink %s: %w", link, err)
	}
	return nil
}

// isSnapshotDir reports whether name looks like <tier>.<n> for one of the
// schedule's tiers.
func isSnapshotDir(name string, tiers []string) bool {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || dot == len(name)-1 {
		return false
	}
	if _, err := strconv.Atoi(name[dot+1:]); err != nil {
		return false
	}
	tier := name[:dot]
	for _, t := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}
