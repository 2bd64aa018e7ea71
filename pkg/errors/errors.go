package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the presentation layer can render it
// without string matching.
type Kind string

const (
	KindUnknown       Kind = "UNKNOWN"
	KindIO            Kind = "IO"
	KindNameCollision Kind = "NAME_COLLISION"
	KindArchiveFormat Kind = "ARCHIVE_FORMAT"
	KindParse         Kind = "PARSE"
	KindDB            Kind = "DB"
	KindNotFound      Kind = "NOT_FOUND"
	KindConfig        Kind = "CONFIG"
)

// Error is a structured error carrying a kind, a human message and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches two errors by kind, so tests and callers can use errors.Is
// against a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Wrapped: err}
}

func Wrapf(err error, kind Kind, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// WithDetail attaches a key/value pair for diagnostics.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// IsKind reports whether err (or anything it wraps) carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the kind of err, or KindUnknown for foreign errors.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
