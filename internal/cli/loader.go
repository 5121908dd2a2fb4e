package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/protosql/internal/querydoc"
	"github.com/roach88/protosql/internal/schema"
)

// Error code constants, unified across all CLI commands. E002 to E006 are
// the schema loader's codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = schema.ErrCodeScanError
	ErrCodeNoFiles     = schema.ErrCodeNoFiles
	ErrCodeLoadFailed  = schema.ErrCodeLoadFailed
	ErrCodeNotFound    = schema.ErrCodeNotFound
	ErrCodeBuildFailed = schema.ErrCodeBuildFailed
	ErrCodeWriteFailed = "E007" // File write error

	// Schema validation errors
	ErrCodeNoMessages    = "E101" // No messages declared
	ErrCodeNoFields      = "E102" // Message without fields
	ErrCodeInvalidType   = "E103" // Unknown or unmappable field type
	ErrCodeFieldNumber   = "E104" // Missing or invalid field number
	ErrCodeUnknownEnum   = "E105" // Field refers to an undeclared enum
	ErrCodePrimaryKey    = "E106" // Invalid primary key
	ErrCodeRepeated      = "E107" // Unsupported repeated field
	ErrCodeSchemaInvalid = "E108" // Any other schema error

	// Query document errors
	ErrCodeInvalidQuery   = "E201" // Document does not parse or build
	ErrCodeUnknownMessage = "E202" // --message names no message in the schema
	ErrCodeTableMismatch  = "E203" // Document table differs from the message table
	ErrCodeWrongStatement = "E204" // Statement kind not supported by the command

	// Database errors
	ErrCodeDatabase = "E301" // Open, ensure or query failed
)

// MapFieldToErrorCode maps the field path of a schema.CompileError to an
// error code.
func MapFieldToErrorCode(field string) string {
	if field == "cue" {
		return ErrCodeBuildFailed
	}
	if field == "message" {
		return ErrCodeNoMessages
	}
	leaf := field
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		leaf = field[i+1:]
	}
	switch leaf {
	case "fields":
		return ErrCodeNoFields
	case "type", "key", "value":
		return ErrCodeInvalidType
	case "number":
		return ErrCodeFieldNumber
	case "enum":
		return ErrCodeUnknownEnum
	case "primary_key":
		return ErrCodePrimaryKey
	case "repeated":
		return ErrCodeRepeated
	default:
		return ErrCodeSchemaInvalid
	}
}

// schemaErrorCode extracts the error code and message of a LoadDir failure.
func schemaErrorCode(err error) (string, string) {
	var loadErr *schema.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var compileErr *schema.CompileError
	if errors.As(err, &compileErr) {
		return MapFieldToErrorCode(compileErr.Field), compileErr.Error()
	}
	return ErrCodeGeneric, err.Error()
}

// loadSchema loads dir and reports failures through f.
func loadSchema(f *OutputFormatter, dir string) (*schema.Schema, error) {
	s, err := schema.LoadDir(dir)
	if err != nil {
		code, message := schemaErrorCode(err)
		return nil, f.Fail(ExitCommandError, code, message, nil)
	}
	f.VerboseLog("Compiled %d message(s), %d enum(s) from %s", len(s.Messages), len(s.Enums), dir)
	return s, nil
}

// loadDocument reads a query document and reports failures through f.
func loadDocument(f *OutputFormatter, path string) (*querydoc.Document, error) {
	doc, err := querydoc.Load(path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeInvalidQuery, err.Error(), nil)
	}
	f.VerboseLog("Loaded %s statement on %s from %s", doc.Statement, doc.Table, path)
	return doc, nil
}

// plural returns "n word(s)"-style counts without the parenthesis.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
