package rotation

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewSchedule_DerivedValues(t *testing.T) {
	tests := []struct {
		name       string
		tiers      []Tier
		wantTotal  int
		wantModuli []int
	}{
		{
			name:       "single tier",
			tiers:      []Tier{{Name: "daily", Capacity: 7}},
			wantTotal:  7,
			wantModuli: []int{1},
		},
		{
			name: "classic three tier rotation",
			tiers: []Tier{
				{Name: "daily", Capacity: 7},
				{Name: "weekly", Capacity: 4},
				{Name: "monthly", Capacity: 6},
			},
			wantTotal:  168,
			wantModuli: []int{1, 7, 28},
		},
		{
			name: "capacity one collapses moduli",
			tiers: []Tier{
				{Name: "hourly", Capacity: 1},
				{Name: "daily", Capacity: 5},
			},
			wantTotal:  5,
			wantModuli: []int{1, 1},
		},
		{
			name: "four tiers",
			tiers: []Tier{
				{Name: "hourly", Capacity: 6},
				{Name: "daily", Capacity: 7},
				{Name: "weekly", Capacity: 4},
				{Name: "monthly", Capacity: 12},
			},
			wantTotal:  2016,
			wantModuli: []int{1, 6, 42, 168},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := NewSchedule(tt.tiers)
			if err != nil {
				t.Fatalf("NewSchedule() failed: %v", err)
			}

			if schedule.CycleTotal() != tt.wantTotal {
				t.Errorf("expected cycle total %d, got %d", tt.wantTotal, schedule.CycleTotal())
			}

			for i := range tt.tiers {
				if schedule.Modulus(i) != tt.wantModuli[i] {
					t.Errorf("tier %d: expected modulus %d, got %d", i, tt.wantModuli[i], schedule.Modulus(i))
				}
			}

			if !reflect.DeepEqual(schedule.Tiers(), tt.tiers) {
				t.Errorf("Tiers() should preserve declaration order, got %v", schedule.Tiers())
			}
		})
	}
}

func TestNewSchedule_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		tiers    []Tier
		wantTier string
	}{
		{
			name:  "empty sequence",
			tiers: nil,
		},
		{
			name:     "zero capacity",
			tiers:    []Tier{{Name: "daily", Capacity: 0}},
			wantTier: "daily",
		},
		{
			name: "negative capacity",
			tiers: []Tier{
				{Name: "daily", Capacity: 7},
				{Name: "weekly", Capacity: -2},
			},
			wantTier: "weekly",
		},
		{
			name: "duplicate name",
			tiers: []Tier{
				{Name: "daily", Capacity: 7},
				{Name: "daily", Capacity: 4},
			},
			wantTier: "daily",
		},
		{
			name:  "empty name",
			tiers: []Tier{{Name: "", Capacity: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchedule(tt.tiers)
			if err == nil {
				t.Fatal("expected validation to fail")
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if validationErr.Tier != tt.wantTier {
				t.Errorf("expected offending tier %q, got %q", tt.wantTier, validationErr.Tier)
			}
		})
	}
}

func TestDueTiers_ClassicRotation(t *testing.T) {
	schedule, err := NewSchedule([]Tier{
		{Name: "daily", Capacity: 7},
		{Name: "weekly", Capacity: 4},
		{Name: "monthly", Capacity: 6},
	})
	if err != nil {
		t.Fatalf("NewSchedule() failed: %v", err)
	}

	tests := []struct {
		index int
		want  []string
	}{
		{index: 0, want: []string{"monthly", "weekly", "daily"}},
		{index: 1, want: []string{"daily"}},
		{index: 6, want: []string{"daily"}},
		{index: 7, want: []string{"weekly", "daily"}},
		{index: 14, want: []string{"weekly", "daily"}},
		{index: 27, want: []string{"daily"}},
		{index: 28, want: []string{"monthly", "weekly", "daily"}},
		{index: 56, want: []string{"monthly", "weekly", "daily"}},
		{index: 140, want: []string{"monthly", "weekly", "daily"}},
		{index: 167, want: []string{"daily"}},
	}

	for _, tt := range tests {
		got := Names(schedule.DueTiers(tt.index))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("index %d: expected due tiers %v, got %v", tt.index, tt.want, got)
		}
	}
}

func TestDueTiers_FinestAlwaysDue(t *testing.T) {
	schedule, err := NewSchedule([]Tier{
		{Name: "daily", Capacity: 3},
		{Name: "weekly", Capacity: 2},
		{Name: "monthly", Capacity: 2},
	})
	if err != nil {
		t.Fatalf("NewSchedule() failed: %v", err)
	}

	for index := 0; index < schedule.CycleTotal(); index++ {
		due := schedule.DueTiers(index)
		if len(due) == 0 {
			t.Fatalf("index %d: expected at least the finest tier to be due", index)
		}
		last := due[len(due)-1]
		if last.Name != "daily" {
			t.Errorf("index %d: expected finest tier last, got %q", index, last.Name)
		}
	}
}

func TestDueTiers_CoarsestFirst(t *testing.T) {
	// An earlier tier with capacity 1 gives two tiers the same modulus;
	// the result must still be ordered by non-increasing modulus.
	schedule, err := NewSchedule([]Tier{
		{Name: "sync", Capacity: 1},
		{Name: "daily", Capacity: 7},
		{Name: "weekly", Capacity: 4},
	})
	if err != nil {
		t.Fatalf("NewSchedule() failed: %v", err)
	}

	moduli := make(map[string]int)
	for i, tier := range schedule.Tiers() {
		moduli[tier.Name] = schedule.Modulus(i)
	}

	for index := 0; index < schedule.CycleTotal(); index++ {
		due := schedule.DueTiers(index)
		for i := 1; i < len(due); i++ {
			if moduli[due[i-1].Name] < moduli[due[i].Name] {
				t.Errorf("index %d: tier %q (modulus %d) ordered before %q (modulus %d)",
					index, due[i-1].Name, moduli[due[i-1].Name], due[i].Name, moduli[due[i].Name])
			}
		}
	}
}

func TestDueTiers_Idempotent(t *testing.T) {
	schedule, err := NewSchedule([]Tier{
		{Name: "daily", Capacity: 7},
		{Name: "weekly", Capacity: 4},
		{Name: "monthly", Capacity: 6},
	})
	if err != nil {
		t.Fatalf("NewSchedule() failed: %v", err)
	}

	for _, index := range []int{0, 1, 7, 28, 167} {
		first := Names(schedule.DueTiers(index))
		second := Names(schedule.DueTiers(index))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("index %d: repeated computation differs: %v vs %v", index, first, second)
		}
	}
}

func TestSchedule_Finest(t *testing.T) {
	schedule, err := NewSchedule([]Tier{
		{Name: "hourly", Capacity: 6},
		{Name: "daily", Capacity: 7},
	})
	if err != nil {
		t.Fatalf("NewSchedule() failed: %v", err)
	}

	if schedule.Finest().Name != "hourly" {
		t.Errorf("expected finest tier %q, got %q", "hourly", schedule.Finest().Name)
	}
}
