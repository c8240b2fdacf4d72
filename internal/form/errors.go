package form

import (
	"errors"
	"fmt"
)

// Scope errors
var (
	// ErrScope indicates that state or the dispatch handle was used outside
	// an active provider scope (never mounted, or already closed).
	ErrScope = errors.New("not available outside provider")
)

// Operation errors
var (
	// ErrIndex indicates that an operation referenced a slot outside [0, length).
	ErrIndex = errors.New("index out of range")

	// ErrUnknownOp indicates an unrecognized operation kind.
	ErrUnknownOp = errors.New("unknown operation")

	// ErrMalformedOp indicates a decoded operation with missing or mistyped fields.
	ErrMalformedOp = errors.New("malformed operation")
)

// ScopeError reports which access was attempted without a provider.
type ScopeError struct {
	Access string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("%s %s", e.Access, ErrScope)
}

func (e *ScopeError) Unwrap() error { return ErrScope }

// IndexError reports an operation addressing a missing slot.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndex }
