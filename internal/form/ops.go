package form

import "formstate/internal/record"

// Op is one operation accepted by the transition function. The set of
// operations is closed: only the types in this file implement it.
type Op interface {
	// Kind returns the lowercase verb naming the operation.
	Kind() string
	isOp()
}

// Reset restores values[Index] to a copy of defaults[Index].
type Reset struct {
	Index int
}

// Set assigns Value to field Key of values[Index].
type Set struct {
	Index int
	Key   string
	Value any
}

// Append adds a copy of Record to the end of both collections.
type Append struct {
	Record record.Record
}

// Prepend adds a copy of Record to the start of both collections.
type Prepend struct {
	Record record.Record
}

// Remove deletes slot Index from both collections.
type Remove struct {
	Index int
}

// ReplaceDefaults swaps in a whole new defaults collection.
type ReplaceDefaults struct {
	Records []record.Record
}

// ReplaceValues swaps in a whole new values collection.
type ReplaceValues struct {
	Records []record.Record
}

func (Reset) Kind() string           { return "reset" }
func (Set) Kind() string             { return "set" }
func (Append) Kind() string          { return "append" }
func (Prepend) Kind() string         { return "prepend" }
func (Remove) Kind() string          { return "remove" }
func (ReplaceDefaults) Kind() string { return "replace_defaults" }
func (ReplaceValues) Kind() string   { return "replace_values" }

func (Reset) isOp()           {}
func (Set) isOp()             {}
func (Append) isOp()          {}
func (Prepend) isOp()         {}
func (Remove) isOp()          {}
func (ReplaceDefaults) isOp() {}
func (ReplaceValues) isOp()   {}
