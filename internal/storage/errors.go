// Package storage implements the JSON collection store: load/save of named
// collections with schema validation, typed defaults on corruption, and the
// record identity generator. All fallible operations return (value, error)
// pairs; nothing in this package panics across its public boundary.
package storage

import (
	"errors"
	"fmt"
)

// Kind classifies a storage error so callers can decide recovery without
// string matching.
type Kind int

const (
	// KindValidation — in-memory data failed a structural rule before any
	// write was attempted. Always recoverable; never a system fault.
	KindValidation Kind = iota + 1
	// KindPersistence — disk I/O, permission, or serialization failure.
	KindPersistence
	// KindCorruption — on-disk data failed parsing or schema validation on
	// load. The store substitutes the typed default and signals upward; it is
	// never escalated to a crash.
	KindCorruption
	// KindConsistency — a detected-but-unrepaired cross-collection
	// inconsistency (e.g. a sale persisted but its stock deduction failed).
	// Logged, never thrown, never blocks operation.
	KindConsistency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPersistence:
		return "persistence"
	case KindCorruption:
		return "corruption"
	case KindConsistency:
		return "consistency"
	}
	return "unknown"
}

// Error is the storage error type carrying the taxonomy kind, the operation
// and file it occurred on, and a human-readable message.
type Error struct {
	Kind Kind
	Op   string
	File string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s %s: %s", e.Op, e.File, e.Msg)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a storage *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == k
}
