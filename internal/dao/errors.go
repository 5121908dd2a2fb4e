package dao

import (
	"errors"
	"fmt"
)

// Error represents a failed DAO operation that did not come from the
// database driver.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op is the DAO operation, e.g. "insert" or "select".
	Op string

	// Table is the target table.
	Table string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes DAO errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a single-row select matched nothing.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeEmptyInsert indicates a message with no set fields.
	ErrCodeEmptyInsert ErrorCode = "EMPTY_INSERT"

	// ErrCodeNoKey indicates an insert that produced no row to take a key from.
	ErrCodeNoKey ErrorCode = "NO_KEY"

	// ErrCodeWrongMessage indicates a message of another descriptor.
	ErrCodeWrongMessage ErrorCode = "WRONG_MESSAGE"

	// ErrCodeUnknownField indicates a field name the descriptor lacks.
	ErrCodeUnknownField ErrorCode = "UNKNOWN_FIELD"
)

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Table, e.Code, e.Message)
}

// IsNotFound returns true if err reports a select that matched no row.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == ErrCodeNotFound
	}
	return false
}

// IsEmptyInsert returns true if err reports an insert with no set fields.
func IsEmptyInsert(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == ErrCodeEmptyInsert
	}
	return false
}

func (d *MessageDao) errorf(code ErrorCode, op, format string, args ...any) error {
	return &Error{Code: code, Op: op, Table: d.desc.Table, Message: fmt.Sprintf(format, args...)}
}
