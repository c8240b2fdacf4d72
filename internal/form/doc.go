// Package form is a state container for an ordered list of editable records.
//
// A Provider holds two index-aligned collections:
//
//   - Defaults: the baseline each slot resets to
//   - Values: the live, edited records
//
// plus the derived Dirty set of slots whose value differs structurally from
// its default. All changes go through Reduce, a pure function from
// (State, Op) to the next State. Op is a closed set of variants: Reset, Set,
// Append, Prepend, Remove, and the coarse ReplaceDefaults/ReplaceValues.
//
// A provider is mounted for a subtree by attaching it to a context with
// WithProvider; StateFrom, DispatchFrom and Use read it back and fail with a
// ScopeError outside that subtree or after Close. Form wraps the dispatch
// handle in verbs (Append, Prepend, Remove, Reset, Set, IsDirty).
//
//	p := form.NewProvider(nil, nil)
//	defer p.Close()
//	f := form.NewForm(p)
//	_ = f.Append(record.Record{"a": 1})
//	_ = f.Set(0, "a", 2)
//	dirty, _ := f.IsDirty(0) // true
package form
