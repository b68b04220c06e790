// Package inhibit decides whether a rotation invocation should be skipped
// because the most frequent tier ran too recently.
//
// The check looks at the newest snapshot of the finest tier
// (<snapshot_root>/<tier>.0) and compares its age against a configured
// window. Within the window the invocation is inhibited: nothing runs and
// no state is mutated, so an over-eager cron entry or a manual extra run
// cannot ratchet the rotation forward too fast.
//
// Two distinct conditions come out of a check:
//
//   - Inhibited: a policy skip, informational, treated as success.
//   - RootError: the snapshot root is inaccessible, so the check could not
//     be made. The invocation aborts without mutating state; the counter
//     itself is fine, which is why this is not a state corruption.
//
// A missing tier directory means no snapshot exists yet and never inhibits.
// A window of zero disables the check entirely.
package inhibit
