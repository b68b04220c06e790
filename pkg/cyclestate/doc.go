// Package cyclestate persists the rotation cycle index.
//
// The entire durable state of the scheduler is one non-negative integer,
// stored as decimal text in a small file. Writes are crash-atomic: the new
// value is written to a temporary file in the same directory and renamed
// into place, so a crash mid-write can never leave a torn counter behind.
//
// A state file that exists but does not hold a non-negative integer is
// reported as a CorruptError and never repaired automatically. Silently
// resetting the counter would replay the rotation from the start and
// desynchronize every coarse tier from reality; the operator has to decide
// what the counter should be.
//
// When no explicit state file is configured, DefaultPath derives one from a
// fingerprint of the configuration path, so distinct configurations never
// collide on the same counter.
package cyclestate
