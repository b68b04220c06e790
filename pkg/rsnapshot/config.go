package rsnapshot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"snapwheel-hq/snapwheel/pkg/rotation"
)

// Configuration keywords recognized by the parser. rsnapshot accepts the
// legacy interval keyword as a synonym for retain.
const (
	keywordRetain       = "retain"
	keywordInterval     = "interval"
	keywordSnapshotRoot = "snapshot_root"
)

// Config holds the scheduler-relevant subset of an rsnapshot configuration.
type Config struct {
	// Path is the configuration file the values were read from.
	// Empty when the config was parsed from a raw stream.
	Path string

	// SnapshotRoot is the snapshot storage root (snapshot_root), used for
	// inhibition checks and symlink upkeep. May be empty when the
	// configuration does not declare one.
	SnapshotRoot string

	// Tiers are the retention tiers in declaration order, most frequent
	// first. Never empty for a successfully parsed configuration.
	Tiers []rotation.Tier
}

// LoadConfig reads and parses the rsnapshot configuration at path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewConfigError(path, 0, "cannot open configuration", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		// Attach the path for user-facing reporting.
		if confErr, ok := err.(*ConfigError); ok {
			confErr.Path = path
			return nil, confErr
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// ParseConfig parses an rsnapshot configuration from r.
//
// Blank lines and lines starting with # are ignored, as are keywords the
// scheduler has no use for. Returns a ConfigError when a retain capacity is
// not a positive integer, a tier name repeats, a recognized declaration is
// space-separated instead of tab-separated, or no tiers are declared.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := splitTabs(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case keywordRetain, keywordInterval:
			if len(fields) < 3 {
				return nil, NewConfigError("", lineNo,
					fmt.Sprintf("%s requires a tier name and a count", fields[0]), nil)
			}
			name := fields[1]
			capacity, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, NewConfigError("", lineNo,
					fmt.Sprintf("retain count for tier %q is not an integer: %q", name, fields[2]), err)
			}
			if capacity <= 0 {
				return nil, NewConfigError("", lineNo,
					fmt.Sprintf("retain count for tier %q must be a positive integer, got %d", name, capacity), nil)
			}
			if _, dup := seen[name]; dup {
				return nil, NewConfigError("", lineNo,
					fmt.Sprintf("tier %q declared more than once", name), nil)
			}
			seen[name] = struct{}{}
			cfg.Tiers = append(cfg.Tiers, rotation.Tier{Name: name, Capacity: capacity})

		case keywordSnapshotRoot:
			if len(fields) < 2 {
				return nil, NewConfigError("", lineNo, "snapshot_root requires a path", nil)
			}
			root := fields[1]
			if len(root) > 1 {
				root = strings.TrimSuffix(root, "/")
			}
			cfg.SnapshotRoot = root

		default:
			// rsnapshot requires tab-separated fields; catch the common
			// mistake of spaces in a declaration we would otherwise need.
			if isSpaceSeparated(fields[0]) {
				return nil, NewConfigError("", lineNo,
					"fields must be separated by tabs, not spaces", nil)
			}
			// Anything else is rsnapshot's own business.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, NewConfigError("", 0, "cannot read configuration", err)
	}

	if len(cfg.Tiers) == 0 {
		return nil, NewConfigError("", 0, "no retention tiers declared (retain lines)", nil)
	}
	return cfg, nil
}

// splitTabs splits a config line on tabs, dropping empty fields so that
// consecutive tabs act as a single delimiter.
func splitTabs(line string) []string {
	raw := strings.Split(line, "\t")
	fields := raw[:0]
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// isSpaceSeparated reports whether a whole undelimited line starts with a
// keyword the parser cares about, which means the author used spaces where
// rsnapshot demands tabs.
func isSpaceSeparated(field string) bool {
	for _, keyword := range []string{keywordRetain, keywordInterval, keywordSnapshotRoot} {
		if strings.HasPrefix(field, keyword+" ") {
			return true
		}
	}
	return false
}
