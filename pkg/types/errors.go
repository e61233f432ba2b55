package types

import (
	"errors"
	"fmt"
)

// Outcome kinds of a failed apply. Use errors.Is to classify.
var (
	// ErrInvalidTransaction rejects the transaction permanently.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrInternal signals a processor fault; the validator may retry.
	ErrInternal = errors.New("internal error")
)

// ApplyError carries the user facing message of a failed apply together with
// its kind and, optionally, the underlying cause.
type ApplyError struct {
	kind  error
	msg   string
	cause error
}

func (e *ApplyError) Error() string {
	return e.msg
}

func (e *ApplyError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// Kind returns ErrInvalidTransaction or ErrInternal.
func (e *ApplyError) Kind() error {
	return e.kind
}

func NewInvalidTransaction(format string, args ...interface{}) error {
	return &ApplyError{kind: ErrInvalidTransaction, msg: fmt.Sprintf(format, args...)}
}

func NewInternalError(format string, args ...interface{}) error {
	return &ApplyError{kind: ErrInternal, msg: fmt.Sprintf(format, args...)}
}

// WrapInvalidTransaction keeps cause reachable through errors.Is/As.
func WrapInvalidTransaction(cause error, format string, args ...interface{}) error {
	return &ApplyError{kind: ErrInvalidTransaction, msg: fmt.Sprintf(format, args...), cause: cause}
}

// WrapInternalError appends the cause to the message and keeps it reachable.
func WrapInternalError(cause error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &ApplyError{kind: ErrInternal, msg: msg, cause: cause}
}

func IsInvalidTransaction(err error) bool {
	return errors.Is(err, ErrInvalidTransaction)
}

func IsInternalError(err error) bool {
	return errors.Is(err, ErrInternal)
}
