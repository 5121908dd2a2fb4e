package field

import (
	"math"
	"reflect"

	"github.com/roach88/protosql/internal/ir"
)

// Converter translates one field's values to and from SQL values.
type Converter interface {
	// SQLValueType is the Go type ToSQL produces.
	SQLValueType() reflect.Type
	// ToSQL converts a field value to its column value.
	ToSQL(fieldValue any) (any, error)
	// FromSQL converts a column value to a field value. nil yields the
	// field type's zero value.
	FromSQL(sqlValue any) (any, error)
}

var (
	typeInt32   = reflect.TypeOf(int32(0))
	typeInt64   = reflect.TypeOf(int64(0))
	typeFloat32 = reflect.TypeOf(float32(0))
	typeFloat64 = reflect.TypeOf(float64(0))
	typeString  = reflect.TypeOf("")
	typeBytes   = reflect.TypeOf([]byte(nil))
)

// BoolConverter stores bool as INTEGER 1 or 0.
type BoolConverter struct {
	fd *ir.FieldDescriptor
}

func (c BoolConverter) SQLValueType() reflect.Type { return typeInt64 }

func (c BoolConverter) ToSQL(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeBool, v, typeInt64.String())
	}
	if b {
		return int64(1), nil
	}
	return int64(0), nil
}

func (c BoolConverter) FromSQL(v any) (any, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	}
	if i, ok := asInt64(v); ok {
		return i != 0, nil
	}
	return nil, incompatible(c.fd, ir.TypeBool, v, "")
}

// Int32Converter accepts any Go integer that fits in int32.
type Int32Converter struct {
	fd *ir.FieldDescriptor
}

func (c Int32Converter) SQLValueType() reflect.Type { return typeInt32 }

func (c Int32Converter) ToSQL(v any) (any, error) {
	i, ok := asInt32(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeInt32, v, typeInt32.String())
	}
	return i, nil
}

func (c Int32Converter) FromSQL(v any) (any, error) {
	if v == nil {
		return int32(0), nil
	}
	i, ok := asInt32(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeInt32, v, "")
	}
	return i, nil
}

// Int64Converter accepts any Go integer that fits in int64.
type Int64Converter struct {
	fd *ir.FieldDescriptor
}

func (c Int64Converter) SQLValueType() reflect.Type { return typeInt64 }

func (c Int64Converter) ToSQL(v any) (any, error) {
	i, ok := asInt64(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeInt64, v, typeInt64.String())
	}
	return i, nil
}

func (c Int64Converter) FromSQL(v any) (any, error) {
	if v == nil {
		return int64(0), nil
	}
	i, ok := asInt64(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeInt64, v, "")
	}
	return i, nil
}

// FloatConverter accepts any Go number and narrows it to float32.
type FloatConverter struct {
	fd *ir.FieldDescriptor
}

func (c FloatConverter) SQLValueType() reflect.Type { return typeFloat32 }

func (c FloatConverter) ToSQL(v any) (any, error) {
	f, ok := asFloat64(v)
	if !ok || (math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0)) {
		return nil, incompatible(c.fd, ir.TypeFloat, v, typeFloat32.String())
	}
	return float32(f), nil
}

func (c FloatConverter) FromSQL(v any) (any, error) {
	if v == nil {
		return float32(0), nil
	}
	f, ok := asFloat64(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeFloat, v, "")
	}
	return float32(f), nil
}

// DoubleConverter accepts any Go number.
type DoubleConverter struct {
	fd *ir.FieldDescriptor
}

func (c DoubleConverter) SQLValueType() reflect.Type { return typeFloat64 }

func (c DoubleConverter) ToSQL(v any) (any, error) {
	f, ok := asFloat64(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeDouble, v, typeFloat64.String())
	}
	return f, nil
}

func (c DoubleConverter) FromSQL(v any) (any, error) {
	if v == nil {
		return float64(0), nil
	}
	f, ok := asFloat64(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeDouble, v, "")
	}
	return f, nil
}

// StringConverter passes strings through. Column bytes decode as UTF-8.
type StringConverter struct {
	fd *ir.FieldDescriptor
}

func (c StringConverter) SQLValueType() reflect.Type { return typeString }

func (c StringConverter) ToSQL(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeString, v, typeString.String())
	}
	return s, nil
}

func (c StringConverter) FromSQL(v any) (any, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return nil, incompatible(c.fd, ir.TypeString, v, "")
	}
}

// BytesConverter stores []byte as BLOB.
type BytesConverter struct {
	fd *ir.FieldDescriptor
}

func (c BytesConverter) SQLValueType() reflect.Type { return typeBytes }

func (c BytesConverter) ToSQL(v any) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeBytes, v, typeBytes.String())
	}
	return b, nil
}

func (c BytesConverter) FromSQL(v any) (any, error) {
	switch b := v.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return append([]byte(nil), b...), nil
	case string:
		return []byte(b), nil
	default:
		return nil, incompatible(c.fd, ir.TypeBytes, v, "")
	}
}

// EnumConverter stores an enum as its number. With an enum type attached,
// numbers outside the enum are rejected in both directions.
type EnumConverter struct {
	fd   *ir.FieldDescriptor
	enum *ir.EnumDescriptor
}

func (c EnumConverter) SQLValueType() reflect.Type { return typeInt32 }

func (c EnumConverter) ToSQL(v any) (any, error) {
	var n int32
	switch e := v.(type) {
	case ir.EnumValue:
		n = e.Number
	default:
		i, ok := asInt32(v)
		if !ok {
			return nil, incompatible(c.fd, ir.TypeEnum, v, typeInt32.String())
		}
		n = i
	}
	if c.enum != nil {
		if _, ok := c.enum.ByNumber(n); !ok {
			err := incompatible(c.fd, ir.TypeEnum, v, typeInt32.String())
			err.Message = "no such value in enum " + c.enum.Name
			return nil, err
		}
	}
	return n, nil
}

func (c EnumConverter) FromSQL(v any) (any, error) {
	if v == nil {
		if c.enum != nil {
			return c.enum.Default(), nil
		}
		return ir.EnumValue{}, nil
	}
	if e, ok := v.(ir.EnumValue); ok {
		v = e.Number
	}
	n, ok := asInt32(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeEnum, v, "")
	}
	if c.enum == nil {
		return ir.EnumValue{Number: n}, nil
	}
	ev, ok := c.enum.ByNumber(n)
	if !ok {
		err := incompatible(c.fd, ir.TypeEnum, v, "")
		err.Message = "no such value in enum " + c.enum.Name
		return nil, err
	}
	return ev, nil
}

// NewScalarConverter returns the converter for a single-valued scalar
// field. Map, repeated and message fields are rejected.
func NewScalarConverter(fd *ir.FieldDescriptor) (Converter, error) {
	if fd.Repeated || fd.IsMap() {
		return nil, &ConversionError{
			Code:    ErrCodeUnsupportedType,
			Field:   fd.FullName(),
			Type:    fd.Type,
			Message: "not a scalar field",
		}
	}
	switch fd.Type {
	case ir.TypeBool:
		return BoolConverter{fd: fd}, nil
	case ir.TypeInt32:
		return Int32Converter{fd: fd}, nil
	case ir.TypeInt64:
		return Int64Converter{fd: fd}, nil
	case ir.TypeFloat:
		return FloatConverter{fd: fd}, nil
	case ir.TypeDouble:
		return DoubleConverter{fd: fd}, nil
	case ir.TypeString:
		return StringConverter{fd: fd}, nil
	case ir.TypeBytes:
		return BytesConverter{fd: fd}, nil
	case ir.TypeEnum:
		return EnumConverter{fd: fd, enum: fd.EnumType}, nil
	default:
		return nil, &ConversionError{
			Code:    ErrCodeUnsupportedType,
			Field:   fd.FullName(),
			Type:    fd.Type,
			Message: "no column mapping for this field type",
		}
	}
}
