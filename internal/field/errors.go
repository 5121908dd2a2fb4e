package field

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/roach88/protosql/internal/ir"
)

// ConversionErrorCode categorizes conversion failures.
type ConversionErrorCode string

const (
	// ErrCodeIncompatibleValue indicates a value of the wrong Go type or out
	// of range for the field.
	ErrCodeIncompatibleValue ConversionErrorCode = "INCOMPATIBLE_VALUE"

	// ErrCodeUnsupportedType indicates a field type with no SQL form.
	ErrCodeUnsupportedType ConversionErrorCode = "UNSUPPORTED_TYPE"

	// ErrCodeMalformedPayload indicates encoded map or list text that does
	// not decode.
	ErrCodeMalformedPayload ConversionErrorCode = "MALFORMED_PAYLOAD"
)

// maxValueText bounds the value rendering carried in errors.
const maxValueText = 64

// ConversionError reports a value that could not cross between a field and
// its column.
type ConversionError struct {
	// Code identifies the error category.
	Code ConversionErrorCode

	// Field is the full name of the field, when known.
	Field string

	// Type is the field's semantic type.
	Type ir.FieldType

	// Value is a truncated rendering of the offending value.
	Value string

	// SQLType names the expected SQL-side Go type, when relevant.
	SQLType string

	// Message adds detail.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s: cannot convert %s field", e.Code, e.Type)
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Value != "" {
		msg += ", value=" + e.Value
	}
	if e.SQLType != "" {
		msg += ", sql type=" + e.SQLType
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// IsConversionError reports whether err wraps a ConversionError.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

// ValueText renders v for diagnostics: its Go type and a truncated %v.
func ValueText(v any) string {
	if v == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%T(%v)", v, v)
	if b, ok := v.([]byte); ok {
		s = fmt.Sprintf("[]byte(%q)", b)
	}
	if len(s) > maxValueText {
		cut := maxValueText
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

func incompatible(fd *ir.FieldDescriptor, t ir.FieldType, v any, sqlType string) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeIncompatibleValue,
		Field:   fieldName(fd),
		Type:    t,
		Value:   ValueText(v),
		SQLType: sqlType,
	}
}

func fieldName(fd *ir.FieldDescriptor) string {
	if fd == nil {
		return ""
	}
	return fd.FullName()
}
