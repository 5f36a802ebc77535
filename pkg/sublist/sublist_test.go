package sublist

import (
	"errors"
	"reflect"
	"testing"
)

// TestFirstSubLists tests that enumeration starts in lexicographic order
func TestFirstSubLists(t *testing.T) {
	master := []string{"A", "B", "C", "D", "E"}

	gen, err := New(master, 3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := [][]string{
		{"A", "B", "C"},
		{"A", "B", "D"},
		{"A", "B", "E"},
	}

	for i, expected := range want {
		got, ok := gen.Next()
		if !ok {
			t.Fatalf("Next() exhausted after %d sublists", i)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("sublist %d = %v, want %v", i, got, expected)
		}
	}
}

// TestSubListCounts tests that enumeration yields exactly C(m, k) sublists
func TestSubListCounts(t *testing.T) {
	tests := []struct {
		name string
		m    int
		k    int
		want int
	}{
		{name: "five choose three", m: 5, k: 3, want: 10},
		{name: "four choose two", m: 4, k: 2, want: 6},
		{name: "six choose one", m: 6, k: 1, want: 6},
		{name: "six choose zero", m: 6, k: 0, want: 1},
		{name: "three choose three", m: 3, k: 3, want: 1},
		{name: "one choose one", m: 1, k: 1, want: 1},
		{name: "eight choose seven", m: 8, k: 7, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			master := make([]int, tt.m)
			for i := range master {
				master[i] = i
			}

			gen, err := New(master, tt.k)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			count := 0
			seen := make(map[string]bool)
			prev := ""
			for {
				sub, ok := gen.Next()
				if !ok {
					break
				}
				if len(sub) != tt.k {
					t.Errorf("sublist %v has size %d, want %d", sub, len(sub), tt.k)
				}

				// Encode for uniqueness and ordering checks
				key := ""
				for _, v := range sub {
					key += string(rune('a' + v))
				}
				if seen[key] {
					t.Errorf("sublist %q emitted twice", key)
				}
				seen[key] = true
				if key < prev {
					t.Errorf("sublist %q emitted after %q, want lexicographic order", key, prev)
				}
				prev = key
				count++
			}

			if count != tt.want {
				t.Errorf("enumerated %d sublists, want %d", count, tt.want)
			}
		})
	}
}

// TestSubListTooLarge tests the precondition on the sublist size
func TestSubListTooLarge(t *testing.T) {
	_, err := New([]string{"A", "B"}, 3)
	if !errors.Is(err, ErrSubListTooLarge) {
		t.Errorf("New() error = %v, want ErrSubListTooLarge", err)
	}

	_, err = New([]string{"A", "B"}, -1)
	if !errors.Is(err, ErrSubListTooLarge) {
		t.Errorf("New() error = %v, want ErrSubListTooLarge", err)
	}
}

// TestEarlyAbandon tests that a generator can be dropped mid-enumeration
func TestEarlyAbandon(t *testing.T) {
	gen, err := New([]string{"A", "B", "C", "D"}, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sub, ok := gen.Next()
	if !ok || len(sub) != 2 {
		t.Fatalf("Next() = %v, %v", sub, ok)
	}
	// Abandoning here must not require draining the generator.
}
