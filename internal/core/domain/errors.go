package domain

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure classes a component can report.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error carries a failure kind and a caller-safe message. Err holds the
// underlying cause, if any, and is never shown to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same kind and message,
// so wrapped copies of a sentinel still match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// ============================================================================
// Not found errors
// ============================================================================

var (
	ErrTableNotFound    = &Error{Kind: KindNotFound, Message: "table not found"}
	ErrRecordNotFound   = &Error{Kind: KindNotFound, Message: "record not found"}
	ErrArtifactNotFound = &Error{Kind: KindNotFound, Message: "artifact not found"}
)

// ============================================================================
// Conflict errors
// ============================================================================

var (
	ErrTableExists    = &Error{Kind: KindConflict, Message: "table already exists"}
	ErrRecordsExist   = &Error{Kind: KindConflict, Message: "one or more users already exist"}
	ErrNewIDExists    = &Error{Kind: KindConflict, Message: "new id already exists"}
	ErrArtifactExists = &Error{Kind: KindConflict, Message: "artifact already exists"}
)

// Validationf builds a KindValidation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a storage or filesystem failure. msg describes the
// operation; the cause stays out of caller-facing output.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf classifies err. Anything that is not a *Error is internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
