package sqlexpr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a construction-time error: a blank
	// identifier, a nil operand, an invalid pagination parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState reports a construct that has no valid SQL form when
	// rendered as a template, e.g. a SELECT with no items.
	ErrInvalidState = errors.New("invalid state")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted message.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// InvalidState wraps ErrInvalidState with a formatted message.
func InvalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
