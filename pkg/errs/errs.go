// Package errs defines the structured error type shared by the pmactab packages.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the category of a failure.
type Kind string

const (
	// KindConfig marks an invalid or unreadable configuration.
	KindConfig Kind = "config"
	// KindInput marks malformed input data (missing columns, shape mismatches).
	KindInput Kind = "input"
	// KindParameter marks motor or table parameters that fail validation.
	KindParameter Kind = "parameter"
	// KindSingularity marks a numeric singularity such as division by a zero
	// electrical frequency.
	KindSingularity Kind = "singularity"
)

// Error is a failure with a kind, the operation that produced it and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error of the same kind with an empty
// message, so errors.Is(err, &Error{Kind: KindInput}) tests the category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Op == ""
}

// New creates an Error.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err with a kind and message.
func Wrap(err error, kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Parameter is shorthand for New(KindParameter, ...).
func Parameter(op, format string, args ...any) *Error {
	return New(KindParameter, op, format, args...)
}

// Input is shorthand for New(KindInput, ...).
func Input(op, format string, args ...any) *Error {
	return New(KindInput, op, format, args...)
}
