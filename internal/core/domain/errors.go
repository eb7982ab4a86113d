package domain

import "errors"

var (
	// ErrNotFound means a referenced record is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique constraint was violated. Never retried.
	ErrDuplicate = errors.New("record already exists")
)

// ConflictError is a deterministic business-rule failure. Re-running the
// transaction cannot change the outcome, so the store never retries one.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

// Conflict builds a sentinel for a rule the current state violates.
func Conflict(msg string) error {
	return &ConflictError{msg: msg}
}
