// Package scheduler drives one rotation invocation end to end.
//
// # Invocation State Machine
//
// A single Run walks this sequence:
//
//	LOAD_STATE: read the persisted cycle index (0 when absent).
//	  Corrupt state aborts immediately; it is never repaired.
//	CHECK_INHIBITION: skip the whole invocation when the finest tier
//	  ran too recently. An inhibited run mutates nothing and is not an
//	  error. An inaccessible snapshot root aborts, also mutating nothing.
//	ADVANCE_INDEX: increment the index modulo the cycle total and
//	  persist it atomically. Simulate mode computes the same index but
//	  skips persistence entirely.
//	COMPUTE_DUE_TIERS: the due set for the post-increment index.
//	INVOKE_EXTERNAL: run the snapshot tool per due tier, coarsest
//	  first. The first failure abandons the remaining tiers; completed
//	  tiers are not rolled back.
//	POST_ACTIONS: journal the run, refresh symlinks, write metrics.
//	  Post-action failures are logged but never fail a completed
//	  rotation.
//
// The counter is persisted before any tier runs, so a crash mid-rotation
// costs at most one missed rotation step, never a replayed one.
//
// All collaborators are injected through Deps; the scheduler owns no
// global state and builds no loggers of its own.
package scheduler
