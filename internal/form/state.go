package form

import (
	"slices"

	"formstate/internal/record"
)

// DirtySet holds the slot indices whose value differs from its default.
type DirtySet map[int]struct{}

// Has reports whether slot i is dirty.
func (d DirtySet) Has(i int) bool {
	_, ok := d[i]
	return ok
}

// Len returns the number of dirty slots.
func (d DirtySet) Len() int {
	return len(d)
}

// Indices returns the dirty slots in ascending order.
func (d DirtySet) Indices() []int {
	out := make([]int, 0, len(d))
	for i := range d {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets hold the same indices.
func (d DirtySet) Equal(other DirtySet) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if !other.Has(i) {
			return false
		}
	}
	return true
}

func (d DirtySet) clone() DirtySet {
	out := make(DirtySet, len(d))
	for i := range d {
		out[i] = struct{}{}
	}
	return out
}

// State is the value held by a provider: index-aligned defaults and values
// plus the derived dirty set.
type State struct {
	Defaults []record.Record
	Values   []record.Record
	Dirty    DirtySet
}

// NewState builds a state from caller-supplied collections. Both are deep
// copied; nil means empty. Dirty is computed when trackDirty is set.
func NewState(defaults, values []record.Record, trackDirty bool) State {
	s := State{
		Defaults: record.CloneAll(defaults),
		Values:   record.CloneAll(values),
		Dirty:    DirtySet{},
	}
	if trackDirty {
		s.Dirty = ComputeDirty(s.Values, s.Defaults)
	}
	return s
}

// Len returns the number of value slots.
func (s State) Len() int {
	return len(s.Values)
}

// Aligned reports whether defaults and values have the same length.
func (s State) Aligned() bool {
	return len(s.Values) == len(s.Defaults)
}

// Clone returns a deep copy of s sharing nothing mutable with it.
func (s State) Clone() State {
	return State{
		Defaults: record.CloneAll(s.Defaults),
		Values:   record.CloneAll(s.Values),
		Dirty:    s.Dirty.clone(),
	}
}

// slots is the index range valid for per-slot operations.
func (s State) slots() int {
	return min(len(s.Values), len(s.Defaults))
}
