package rotation

import (
	"fmt"
	"sort"
)

// Tier is a single named retention level.
type Tier struct {
	// Name identifies the tier and must be unique within a schedule.
	// It is passed verbatim to the external snapshot tool.
	Name string

	// Capacity is the number of snapshots of this tier to keep.
	// Must be strictly positive.
	Capacity int
}

// ValidationError reports an invalid tier sequence.
type ValidationError struct {
	Tier    string // offending tier name, empty when the sequence as a whole is invalid
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tier != "" {
		return fmt.Sprintf("invalid retention tier %q: %s", e.Tier, e.Message)
	}
	return fmt.Sprintf("invalid retention schedule: %s", e.Message)
}

// Schedule is the rotation derived from an ordered tier sequence.
// It is immutable after construction and safe for concurrent reads.
type Schedule struct {
	tiers  []Tier
	moduli []int
	total  int
}

// NewSchedule validates the ordered tier sequence and derives the rotation.
//
// Declaration order is significant: the first tier is the most frequent.
// Returns a ValidationError when the sequence is empty, a capacity is not
// strictly positive, or a tier name is empty or repeated.
func NewSchedule(tiers []Tier) (*Schedule, error) {
	if len(tiers) == 0 {
		return nil, &ValidationError{Message: "no retention tiers declared"}
	}

	seen := make(map[string]struct{}, len(tiers))
	moduli := make([]int, len(tiers))
	total := 1

	for i, tier := range tiers {
		if tier.Name == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("tier %d has an empty name", i)}
		}
		if tier.Capacity <= 0 {
			return nil, &ValidationError{
				Tier:    tier.Name,
				Message: fmt.Sprintf("capacity must be a positive integer, got %d", tier.Capacity),
			}
		}
		if _, dup := seen[tier.Name]; dup {
			return nil, &ValidationError{Tier: tier.Name, Message: "declared more than once"}
		}
		seen[tier.Name] = struct{}{}

		// The modulus of a tier is the product of all capacities declared
		// before it; the empty product makes the first tier's modulus 1.
		moduli[i] = total
		total *= tier.Capacity
	}

	return &Schedule{
		tiers:  append([]Tier(nil), tiers...),
		moduli: moduli,
		total:  total,
	}, nil
}

// CycleTotal returns the full rotation period: the product of all tier
// capacities. Cycle indices live in [0, CycleTotal).
func (s *Schedule) CycleTotal() int {
	return s.total
}

// Tiers returns the tiers in declaration order (most frequent first).
func (s *Schedule) Tiers() []Tier {
	return append([]Tier(nil), s.tiers...)
}

// Len returns the number of tiers.
func (s *Schedule) Len() int {
	return len(s.tiers)
}

// Modulus returns the cycle-index divisor of the i-th declared tier.
// A tier is due at index n iff n mod Modulus(i) == 0.
func (s *Schedule) Modulus(i int) int {
	return s.moduli[i]
}

// Finest returns the most frequent tier (the first declared, modulus 1).
func (s *Schedule) Finest() Tier {
	return s.tiers[0]
}

// DueTiers returns the tiers due at the given cycle index, coarsest first.
//
// A tier is due iff index mod modulus == 0. The finest tier has modulus 1
// and is therefore part of every result. Tiers sharing a modulus keep
// reverse declaration order relative to each other.
func (s *Schedule) DueTiers(index int) []Tier {
	// Walk the tiers in reverse declaration order, then settle ties on the
	// derived moduli so the coarsest tier always leads.
	order := make([]int, len(s.tiers))
	for i := range order {
		order[i] = len(s.tiers) - 1 - i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.moduli[order[a]] > s.moduli[order[b]]
	})

	due := make([]Tier, 0, len(s.tiers))
	for _, i := range order {
		if index%s.moduli[i] == 0 {
			due = append(due, s.tiers[i])
		}
	}
	return due
}

// Names returns the names of the given tiers in order.
func Names(tiers []Tier) []string {
	names := make([]string, len(tiers))
	for i, tier := range tiers {
		names[i] = tier.Name
	}
	return names
}
