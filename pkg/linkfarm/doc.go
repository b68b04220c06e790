// Package linkfarm maintains human-friendly symlinks into the snapshot
// root.
//
// rsnapshot names snapshot directories <tier>.<n> and renumbers them on
// every rotation, which makes "the backup from last Tuesday" hard to find
// by eye. After a successful rotation the farm is refreshed:
//
//   - <root>/latest points at the newest snapshot of the finest tier.
//   - <root>/by-date/ holds one link per snapshot directory, named from
//     the directory's timestamp.
//
// The by-date farm is rebuilt from scratch on each run because rotation
// shifts every directory number; stale links would otherwise point at the
// wrong snapshot. Farm maintenance is housekeeping: failures are reported
// to the caller but never fail a completed rotation.
package linkfarm
