package streak

import (
	"errors"
	"fmt"
)

// EngineError represents a recoverable failure inside the streak pipeline.
//
// None of these are fatal: a transient sync error leaves the optimistic local
// state in place and is retried on the next triggering event; an invariant
// violation is logged and evaluation proceeds with a best-effort result.
type EngineError struct {
	Code    ErrorCode
	Message string
	UserID  uint
	Err     error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// CodeTransientSync indicates a remote read/write failed. Local
	// optimistic state is kept; the next triggering event retries naturally.
	CodeTransientSync ErrorCode = "TRANSIENT_SYNC"

	// CodeInvariantViolation indicates corrupt bookkeeping was detected,
	// such as the backward-walk bound being exceeded or an unparseable
	// record date.
	CodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
)

func (e *EngineError) Error() string {
	if e.UserID != 0 {
		return fmt.Sprintf("%s: %s (user=%d)", e.Code, e.Message, e.UserID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error { return e.Err }

// NewTransientError wraps a failed store operation.
func NewTransientError(userID uint, op string, err error) *EngineError {
	return &EngineError{
		Code:    CodeTransientSync,
		Message: op + " failed",
		UserID:  userID,
		Err:     err,
	}
}

// IsTransient reports whether err is a transient sync failure.
// Uses errors.As to handle wrapped errors.
func IsTransient(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code == CodeTransientSync
	}
	return false
}
