package workouts

import (
	"errors"
	"fmt"

	"github.com/nicklany01/workout-scheduler/pkg"
)

type ErrorKind string

const (
	KindInvalidReference   ErrorKind = "invalid_reference"
	KindConflict           ErrorKind = "conflict"
	KindTransactionFailure ErrorKind = "transaction_failure"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidInput       ErrorKind = "invalid_input"
)

// Error is the single error type surfaced by the stores and the engine.
// The message-less sentinels below match any *Error of the same kind
// through errors.Is; an *Error with a message only matches itself.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

var (
	ErrInvalidReference   = &Error{Kind: KindInvalidReference}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrTransactionFailure = &Error{Kind: KindTransactionFailure}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
)

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

func InvalidReference(msg string) *Error {
	return &Error{Kind: KindInvalidReference, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func TransactionFailure(msg string, err error) *Error {
	return &Error{Kind: KindTransactionFailure, Message: msg, Err: err}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidInput(msg string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StoreError maps a failed store call into the taxonomy. Errors already
// classified pass through untouched; Postgres constraint errors become
// Conflict or InvalidReference; everything else is a TransactionFailure
// that keeps the cause for retry decisions.
func StoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != "" {
		return err
	}
	switch {
	case pkg.IsUniqueViolationError(err):
		return &Error{Kind: KindConflict, Message: op + ": already exists", Err: err}
	case pkg.IsForeignKeyViolationError(err):
		return &Error{Kind: KindInvalidReference, Message: op + ": unknown reference", Err: err}
	case pkg.IsCheckViolationError(err):
		return &Error{Kind: KindInvalidInput, Message: op + ": value out of range", Err: err}
	}
	return TransactionFailure(op, err)
}
