package sqlexpr

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value holds one bound parameter in its native type.
// Values are created by CollectValues and are immutable.
type Value struct {
	v any
}

// NewValue wraps v as a bound value.
func NewValue(v any) Value {
	return Value{v: v}
}

// Get returns the wrapped native value.
func (v Value) Get() any {
	return v.v
}

// String returns the solid SQL form of the value.
func (v Value) String() string {
	return string(v.AppendSolid(nil))
}

// AppendSolid appends the literal SQL form of the value:
//   - nil: NULL
//   - bool: TRUE / FALSE
//   - integers and floats: decimal text, negatives wrapped as (-n) so that
//     "a-?" never becomes a "--" comment
//   - string, fmt.Stringer and anything else: single-quoted, quotes doubled
//   - []byte: X'hex'
//   - time.Time: quoted "2006-01-02 15:04:05.999999999"
func (v Value) AppendSolid(b []byte) []byte {
	switch val := v.v.(type) {
	case nil:
		return append(b, "NULL"...)
	case bool:
		if val {
			return append(b, "TRUE"...)
		}
		return append(b, "FALSE"...)
	case int:
		return appendSigned(b, int64(val))
	case int8:
		return appendSigned(b, int64(val))
	case int16:
		return appendSigned(b, int64(val))
	case int32:
		return appendSigned(b, int64(val))
	case int64:
		return appendSigned(b, val)
	case uint:
		return strconv.AppendUint(b, uint64(val), 10)
	case uint8:
		return strconv.AppendUint(b, uint64(val), 10)
	case uint16:
		return strconv.AppendUint(b, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(b, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(b, val, 10)
	case float32:
		return appendFloat(b, float64(val), 32)
	case float64:
		return appendFloat(b, val, 64)
	case string:
		return appendQuoted(b, val)
	case []byte:
		b = append(b, "X'"...)
		b = append(b, strings.ToUpper(hex.EncodeToString(val))...)
		return append(b, '\'')
	case time.Time:
		return appendQuoted(b, val.Format("2006-01-02 15:04:05.999999999"))
	case fmt.Stringer:
		return appendQuoted(b, val.String())
	default:
		return appendQuoted(b, fmt.Sprint(val))
	}
}

func appendSigned(b []byte, n int64) []byte {
	if n < 0 {
		b = append(b, '(')
		b = strconv.AppendInt(b, n, 10)
		return append(b, ')')
	}
	return strconv.AppendInt(b, n, 10)
}

func appendFloat(b []byte, f float64, bits int) []byte {
	if f < 0 {
		b = append(b, '(')
		b = strconv.AppendFloat(b, f, 'g', -1, bits)
		return append(b, ')')
	}
	return strconv.AppendFloat(b, f, 'g', -1, bits)
}

func appendQuoted(b []byte, s string) []byte {
	b = append(b, '\'')
	b = append(b, strings.ReplaceAll(s, "'", "''")...)
	return append(b, '\'')
}

// ValuesToArgs unwraps collected values into driver arguments.
func ValuesToArgs(vals []Value) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v.v
	}
	return args
}
