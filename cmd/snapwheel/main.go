// Snapwheel schedules rsnapshot retention tiers from a single cron entry.
//
// It keeps a persistent cycle counter and, on each invocation, decides
// which retention tiers are due, invoking rsnapshot once per due tier
// from coarsest to finest:
//
//	# Advance the cycle and rotate whatever is due
//	snapwheel run
//
//	# Preview what the next invocation would do, touching nothing
//	snapwheel run --simulate
//
//	# Show the current cycle position
//	snapwheel status
//
//	# Show the next week of invocations
//	snapwheel plan --steps 7
//
//	# Check both configuration files and print the derived schedule
//	snapwheel validate
//
//	# Inspect past runs
//	snapwheel history --limit 20
//
// For complete documentation, see: https://github.com/snapwheel-hq/snapwheel
package main

func main() {
	Execute()
}
