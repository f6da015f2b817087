package cli

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgMap         = errors.New("missing argument")
)

// UsageError means the user invoked a command incorrectly.
// When a [CommandFunc] returns one, [Command.Exec] prints it followed by the command's usage.
type UsageError struct {
	wrapped error
}

func (e *UsageError) Error() string {
	if e.wrapped == nil {
		return "usage error"
	}
	return "usage error: " + e.wrapped.Error()
}

// Is matches any *UsageError, so errors.Is(err, &UsageError{}) works as a type check.
func (e *UsageError) Is(err error) bool {
	_, ok := err.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.wrapped
}

// NewUsageError creates a [UsageError] from a format string, which may wrap another error with %w.
func NewUsageError(format string, args ...any) error {
	return &UsageError{wrapped: fmt.Errorf(format, args...)}
}

// AsUsage wraps err in a [UsageError], unless it already is one.
// A nil err is returned as nil.
func AsUsage(err error) error {
	if err == nil || errors.Is(err, &UsageError{}) {
		return err
	}
	return &UsageError{wrapped: err}
}
