package form

import (
	"fmt"

	"formstate/internal/record"
)

// Options controls dirty tracking in the transition function.
type Options struct {
	TrackDirty bool
	Policy     DirtyPolicy
}

// DefaultOptions tracks dirtiness with full recomputation.
func DefaultOptions() Options {
	return Options{TrackDirty: true, Policy: DirtyFull}
}

// Reduce applies op to s and returns the next state. s is never modified:
// every collection that changes is freshly allocated and every slot the
// operation writes holds a new record. Records that are not touched are
// shared between s and the result; neither side mutates them in place.
//
// On error the returned state is s.
func Reduce(s State, op Op, opts Options) (State, error) {
	switch op := op.(type) {
	case Reset:
		if err := checkIndex(op.Kind(), op.Index, s.slots()); err != nil {
			return s, err
		}
		values := copyRecords(s.Values)
		values[op.Index] = record.Clone(s.Defaults[op.Index])
		return opts.settle(s, State{Defaults: s.Defaults, Values: values}, op.Index), nil

	case Set:
		if err := checkIndex(op.Kind(), op.Index, len(s.Values)); err != nil {
			return s, err
		}
		values := copyRecords(s.Values)
		values[op.Index] = s.Values[op.Index].With(op.Key, record.CloneValue(op.Value))
		return opts.settle(s, State{Defaults: s.Defaults, Values: values}, op.Index), nil

	case Append:
		next := State{
			Defaults: insertAt(s.Defaults, len(s.Defaults), record.Clone(op.Record)),
			Values:   insertAt(s.Values, len(s.Values), record.Clone(op.Record)),
		}
		return opts.settle(s, next, -1), nil

	case Prepend:
		next := State{
			Defaults: insertAt(s.Defaults, 0, record.Clone(op.Record)),
			Values:   insertAt(s.Values, 0, record.Clone(op.Record)),
		}
		return opts.settle(s, next, -1), nil

	case Remove:
		if err := checkIndex(op.Kind(), op.Index, s.slots()); err != nil {
			return s, err
		}
		next := State{
			Defaults: removeAt(s.Defaults, op.Index),
			Values:   removeAt(s.Values, op.Index),
		}
		return opts.settle(s, next, -1), nil

	case ReplaceDefaults:
		next := State{Defaults: record.CloneAll(op.Records), Values: s.Values}
		return opts.settle(s, next, -1), nil

	case ReplaceValues:
		next := State{Defaults: s.Defaults, Values: record.CloneAll(op.Records)}
		return opts.settle(s, next, -1), nil

	case nil:
		return s, fmt.Errorf("%w: nil", ErrUnknownOp)

	default:
		return s, fmt.Errorf("%w: %T", ErrUnknownOp, op)
	}
}

// settle fills in the dirty set of next. touched is the only slot the
// operation changed, or -1 when indices may have shifted.
func (o Options) settle(prev, next State, touched int) State {
	switch {
	case !o.TrackDirty:
		next.Dirty = DirtySet{}
	case o.Policy == DirtyTargeted && touched >= 0 && prev.Aligned() && next.Aligned():
		next.Dirty = refreshDirty(prev.Dirty, next, touched)
	default:
		next.Dirty = ComputeDirty(next.Values, next.Defaults)
	}
	return next
}

func checkIndex(op string, i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Op: op, Index: i, Len: n}
	}
	return nil
}

func copyRecords(rs []record.Record) []record.Record {
	out := make([]record.Record, len(rs))
	copy(out, rs)
	return out
}

func insertAt(rs []record.Record, i int, r record.Record) []record.Record {
	out := make([]record.Record, 0, len(rs)+1)
	out = append(out, rs[:i]...)
	out = append(out, r)
	return append(out, rs[i:]...)
}

func removeAt(rs []record.Record, i int) []record.Record {
	out := make([]record.Record, 0, len(rs)-1)
	out = append(out, rs[:i]...)
	return append(out, rs[i+1:]...)
}
