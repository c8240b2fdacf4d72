package form

import (
	"context"

	"formstate/internal/record"
)

// Form is the verb layer over a provider. Mutating verbs submit exactly one
// operation and report only errors; their effect is visible on the next read.
type Form struct {
	p        *Provider
	dispatch Dispatcher
}

// NewForm wraps p.
func NewForm(p *Provider) *Form {
	return &Form{p: p, dispatch: p.Dispatcher()}
}

// Use returns a Form over the provider mounted on ctx.
func Use(ctx context.Context) (*Form, error) {
	p, err := lookup(ctx, "form")
	if err != nil {
		return nil, err
	}
	return NewForm(p), nil
}

// Provider returns the wrapped provider.
func (f *Form) Provider() *Provider {
	return f.p
}

// Append adds a copy of r as the last slot.
func (f *Form) Append(r record.Record) error {
	return f.dispatch(Append{Record: r})
}

// Prepend adds a copy of r as the first slot.
func (f *Form) Prepend(r record.Record) error {
	return f.dispatch(Prepend{Record: r})
}

// Remove deletes slot i.
func (f *Form) Remove(i int) error {
	return f.dispatch(Remove{Index: i})
}

// Reset restores slot i to its default.
func (f *Form) Reset(i int) error {
	return f.dispatch(Reset{Index: i})
}

// Set assigns value to field key of slot i.
func (f *Form) Set(i int, key string, value any) error {
	return f.dispatch(Set{Index: i, Key: key, Value: value})
}

// ReplaceDefaults swaps in a new defaults collection.
func (f *Form) ReplaceDefaults(rs []record.Record) error {
	return f.dispatch(ReplaceDefaults{Records: rs})
}

// ReplaceValues swaps in a new values collection.
func (f *Form) ReplaceValues(rs []record.Record) error {
	return f.dispatch(ReplaceValues{Records: rs})
}

// IsDirty reports whether slot i differs from its default. With dirty
// tracking enabled the maintained set answers; otherwise the two records
// are compared directly. Unaligned collections are never dirty.
func (f *Form) IsDirty(i int) (bool, error) {
	var (
		dirty bool
		err   error
	)
	verr := f.p.view("isDirty", func(s State) {
		if err = checkIndex("isDirty", i, s.slots()); err != nil {
			return
		}
		switch {
		case !s.Aligned():
			dirty = false
		case f.p.opts.TrackDirty:
			dirty = s.Dirty.Has(i)
		default:
			dirty = !record.Equal(s.Values[i], s.Defaults[i])
		}
	})
	if verr != nil {
		return false, verr
	}
	return dirty, err
}

// DirtyIndices returns every dirty slot in ascending order.
func (f *Form) DirtyIndices() ([]int, error) {
	var out []int
	err := f.p.view("dirty", func(s State) {
		if f.p.opts.TrackDirty {
			out = s.Dirty.Indices()
			return
		}
		out = ComputeDirty(s.Values, s.Defaults).Indices()
	})
	return out, err
}

// Changes returns the sorted field keys of slot i that differ from its
// default.
func (f *Form) Changes(i int) ([]string, error) {
	var (
		out []string
		err error
	)
	verr := f.p.view("changes", func(s State) {
		if err = checkIndex("changes", i, s.slots()); err != nil {
			return
		}
		out = record.ChangedFields(s.Defaults[i], s.Values[i])
	})
	if verr != nil {
		return nil, verr
	}
	return out, err
}

// Len returns the number of value slots.
func (f *Form) Len() (int, error) {
	var n int
	err := f.p.view("len", func(s State) { n = s.Len() })
	return n, err
}

// Values returns a copy of the live values.
func (f *Form) Values() ([]record.Record, error) {
	var out []record.Record
	err := f.p.view("values", func(s State) { out = record.CloneAll(s.Values) })
	return out, err
}

// Defaults returns a copy of the baseline values.
func (f *Form) Defaults() ([]record.Record, error) {
	var out []record.Record
	err := f.p.view("defaults", func(s State) { out = record.CloneAll(s.Defaults) })
	return out, err
}

// State returns a copy of the whole provider state.
func (f *Form) State() (State, error) {
	return f.p.State()
}
