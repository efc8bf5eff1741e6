package metadb

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the three ways a conversion or resolution can fail.
type ErrorKind int

const (
	// TypeMismatch: the datum is present but has the wrong kind or shape.
	TypeMismatch ErrorKind = 1 + iota
	// NotFound: an identifier or field is absent, or matched only
	// tombstoned entries.
	NotFound
	// Ambiguous: a name-format lookup matched more than one live entry.
	Ambiguous
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case NotFound:
		return "not found"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the only error type produced by conversion and resolution. Msg is
// meant to be surfaced to clients verbatim; Kind lets request handlers match
// the failure class exhaustively.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func typeMismatchf(format string, args ...any) error {
	return &Error{TypeMismatch, fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{NotFound, fmt.Sprintf(format, args...)}
}

func ambiguousf(format string, args ...any) error {
	return &Error{Ambiguous, fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
