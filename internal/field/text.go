package field

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/roach88/protosql/internal/ir"
)

// textParser turns the text of one encoded element into an SQL value of
// the element's field type. Scalar converters finish the job.
type textParser func(text string) (any, error)

// lookupTextParser returns the parser for fd's type. Types without a text
// form (bytes, message, map) have none.
func lookupTextParser(fd *ir.FieldDescriptor) (textParser, bool) {
	switch fd.Type {
	case ir.TypeBool:
		return parseBoolText, true
	case ir.TypeEnum:
		return func(text string) (any, error) { return strconv.ParseInt(text, 10, 32) }, true
	case ir.TypeInt32:
		return func(text string) (any, error) { return strconv.ParseInt(text, 10, 32) }, true
	case ir.TypeInt64:
		return func(text string) (any, error) { return strconv.ParseInt(text, 10, 64) }, true
	case ir.TypeFloat:
		return func(text string) (any, error) { return strconv.ParseFloat(text, 32) }, true
	case ir.TypeDouble:
		return func(text string) (any, error) { return strconv.ParseFloat(text, 64) }, true
	case ir.TypeString:
		return func(text string) (any, error) { return text, nil }, true
	default:
		return nil, false
	}
}

// parseBoolText reads the 0/1 form bools are stored in. true and false are
// accepted as well.
func parseBoolText(text string) (any, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i, nil
	}
	b, err := strconv.ParseBool(text)
	if err != nil {
		return nil, fmt.Errorf("bool text %q is neither an integer nor true/false", text)
	}
	return b, nil
}

// sqlText is the text form of a scalar SQL value, used for JSON object keys
// and for re-parsing decoded elements.
func sqlText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("no text form for %T", v)
	}
}

// appendJSONValue appends v as a JSON scalar.
func appendJSONValue(b []byte, v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return append(b, "null"...), nil
	case string:
		return appendJSONString(b, x)
	case bool:
		return strconv.AppendBool(b, x), nil
	case int32:
		return strconv.AppendInt(b, int64(x), 10), nil
	case int64:
		return strconv.AppendInt(b, x, 10), nil
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return b, fmt.Errorf("%v has no JSON form", x)
		}
		return strconv.AppendFloat(b, float64(x), 'g', -1, 32), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return b, fmt.Errorf("%v has no JSON form", x)
		}
		return strconv.AppendFloat(b, x, 'g', -1, 64), nil
	default:
		return b, fmt.Errorf("no JSON form for %T", v)
	}
}

// appendJSONString appends s as a JSON string without HTML escaping, so
// stored text stays readable in the database.
func appendJSONString(b []byte, s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return b, err
	}
	return append(b, bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})...), nil
}

// jsonScalarText reads one scalar token from dec and returns its text.
// null yields ok=false.
func jsonScalarText(dec *json.Decoder) (text string, ok bool, err error) {
	tok, err := dec.Token()
	if err != nil {
		return "", false, err
	}
	switch t := tok.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case json.Number:
		return t.String(), true, nil
	case bool:
		return strconv.FormatBool(t), true, nil
	default:
		return "", false, fmt.Errorf("unexpected %v, want a scalar", t)
	}
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("unexpected %v, want %v", tok, want)
	}
	return nil
}

// expectEnd fails unless dec has consumed its whole input.
func expectEnd(dec *json.Decoder) error {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("trailing data: %w", err)
	}
	return fmt.Errorf("trailing data: unexpected %v", tok)
}

// payloadText accepts the column forms an encoded document arrives in.
func payloadText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	default:
		return "", false
	}
}
