// Package rotation derives the backup rotation schedule from an ordered
// sequence of retention tiers.
//
// # Rotation Arithmetic
//
// Each tier keeps a fixed number of snapshots (its capacity). Declaration
// order defines frequency: the first tier is the most frequent, and every
// later tier rotates once per full cycle of the tier before it. From the
// ordered capacities the schedule derives:
//
//   - CycleTotal: the product of all capacities. After CycleTotal
//     invocations every tier's due pattern repeats.
//   - Modulus (per tier): the product of the capacities declared before it.
//     The first tier has modulus 1. A tier is due at index i iff
//     i mod modulus == 0.
//
// # Basic Usage
//
//	schedule, err := rotation.NewSchedule([]rotation.Tier{
//	    {Name: "daily", Capacity: 7},
//	    {Name: "weekly", Capacity: 4},
//	    {Name: "monthly", Capacity: 6},
//	})
//	if err != nil {
//	    return err
//	}
//
//	// CycleTotal: 168, moduli: daily=1, weekly=7, monthly=28
//	due := schedule.DueTiers(28) // [monthly, weekly, daily]
//
// # Ordering
//
// DueTiers returns tiers coarsest first (largest modulus to smallest),
// because a coarser tier's rotation pulls from the finer tier's output and
// must therefore run before it. The finest tier (modulus 1) is due at every
// index. When two tiers share a modulus (possible when an earlier tier has
// capacity 1), the later-declared tier comes first; callers should treat the
// exact tie order as implementation-defined.
package rotation
