package form

import "formstate/internal/record"

// DirtyPolicy selects how the dirty set is maintained across transitions.
type DirtyPolicy int

const (
	// DirtyFull recomputes the whole set after every operation.
	DirtyFull DirtyPolicy = iota

	// DirtyTargeted refreshes only the touched slot for Set and Reset, which
	// cannot change any other slot. Every other operation recomputes fully.
	DirtyTargeted
)

// String returns the config name of the policy.
func (p DirtyPolicy) String() string {
	switch p {
	case DirtyFull:
		return "full"
	case DirtyTargeted:
		return "targeted"
	default:
		return "unknown"
	}
}

// ComputeDirty returns the slots where values[i] differs from defaults[i].
// Unaligned collections have no meaningful pairing and yield an empty set.
func ComputeDirty(values, defaults []record.Record) DirtySet {
	dirty := DirtySet{}
	if len(values) != len(defaults) {
		return dirty
	}
	for i := range values {
		if !record.Equal(values[i], defaults[i]) {
			dirty[i] = struct{}{}
		}
	}
	return dirty
}

// refreshDirty returns a copy of prev with slot i re-evaluated against s.
func refreshDirty(prev DirtySet, s State, i int) DirtySet {
	next := prev.clone()
	if record.Equal(s.Values[i], s.Defaults[i]) {
		delete(next, i)
	} else {
		next[i] = struct{}{}
	}
	return next
}
