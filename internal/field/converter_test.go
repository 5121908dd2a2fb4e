package field

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/protosql/internal/ir"
)

var statusEnum = &ir.EnumDescriptor{Name: "Status", Values: []ir.EnumValueDescriptor{
	{Name: "UNKNOWN", Number: 0}, {Name: "ACTIVE", Number: 1}, {Name: "DISABLED", Number: 2},
}}

func scalarField(t ir.FieldType) *ir.FieldDescriptor {
	fd := &ir.FieldDescriptor{Name: "f", Number: 1, Type: t, Parent: "M"}
	if t == ir.TypeEnum {
		fd.EnumType = statusEnum
		fd.EnumName = statusEnum.Name
	}
	return fd
}

func scalar(t *testing.T, ft ir.FieldType) Converter {
	t.Helper()
	c, err := NewScalarConverter(scalarField(ft))
	require.NoError(t, err)
	return c
}

func TestScalar_ToSQL(t *testing.T) {
	tests := []struct {
		name string
		typ  ir.FieldType
		in   any
		want any
	}{
		{"bool true", ir.TypeBool, true, int64(1)},
		{"bool false", ir.TypeBool, false, int64(0)},
		{"int32 from int", ir.TypeInt32, 7, int32(7)},
		{"int32 from uint8", ir.TypeInt32, uint8(7), int32(7)},
		{"int64 from int32", ir.TypeInt64, int32(-3), int64(-3)},
		{"float from double", ir.TypeFloat, 1.5, float32(1.5)},
		{"float from int", ir.TypeFloat, 2, float32(2)},
		{"double from float", ir.TypeDouble, float32(0.5), 0.5},
		{"double from int64", ir.TypeDouble, int64(4), 4.0},
		{"string", ir.TypeString, "x", "x"},
		{"bytes", ir.TypeBytes, []byte("ab"), []byte("ab")},
		{"enum value", ir.TypeEnum, ir.EnumValue{Name: "ACTIVE", Number: 1}, int32(1)},
		{"enum number", ir.TypeEnum, 2, int32(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scalar(t, tt.typ).ToSQL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalar_ToSQLRejects(t *testing.T) {
	tests := []struct {
		name string
		typ  ir.FieldType
		in   any
	}{
		{"bool from int", ir.TypeBool, 1},
		{"int32 overflow", ir.TypeInt32, int64(math.MaxInt32) + 1},
		{"int32 from float", ir.TypeInt32, 1.0},
		{"int64 from uint64 overflow", ir.TypeInt64, uint64(math.MaxUint64)},
		{"int64 from string", ir.TypeInt64, "1"},
		{"float overflow", ir.TypeFloat, math.MaxFloat64},
		{"double from string", ir.TypeDouble, "1.5"},
		{"string from int", ir.TypeString, 1},
		{"bytes from string", ir.TypeBytes, "ab"},
		{"enum unknown number", ir.TypeEnum, 9},
		{"enum from string", ir.TypeEnum, "ACTIVE"},
		{"nil", ir.TypeInt32, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scalar(t, tt.typ).ToSQL(tt.in)
			require.Error(t, err)
			assert.True(t, IsConversionError(err))

			var ce *ConversionError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, ErrCodeIncompatibleValue, ce.Code)
			assert.Equal(t, tt.typ, ce.Type)
			assert.Equal(t, "M.f", ce.Field)
			assert.Contains(t, err.Error(), tt.typ.String())
		})
	}
}

func TestScalar_FromSQLNilIsZero(t *testing.T) {
	tests := []struct {
		typ  ir.FieldType
		want any
	}{
		{ir.TypeBool, false},
		{ir.TypeInt32, int32(0)},
		{ir.TypeInt64, int64(0)},
		{ir.TypeFloat, float32(0)},
		{ir.TypeDouble, 0.0},
		{ir.TypeString, ""},
		{ir.TypeBytes, []byte{}},
		{ir.TypeEnum, ir.EnumValue{Name: "UNKNOWN", Number: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, err := scalar(t, tt.typ).FromSQL(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalar_FromSQL(t *testing.T) {
	tests := []struct {
		name string
		typ  ir.FieldType
		in   any
		want any
	}{
		{"bool from 1", ir.TypeBool, int64(1), true},
		{"bool from 0", ir.TypeBool, int64(0), false},
		{"bool from 5", ir.TypeBool, int64(5), true},
		{"int32", ir.TypeInt32, int64(12), int32(12)},
		{"int64", ir.TypeInt64, int64(1 << 40), int64(1 << 40)},
		{"float", ir.TypeFloat, 1.25, float32(1.25)},
		{"double from int", ir.TypeDouble, int64(3), 3.0},
		{"string from bytes", ir.TypeString, []byte("hi"), "hi"},
		{"bytes from string", ir.TypeBytes, "hi", []byte("hi")},
		{"enum", ir.TypeEnum, int64(2), ir.EnumValue{Name: "DISABLED", Number: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scalar(t, tt.typ).FromSQL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalar_FromSQLRejects(t *testing.T) {
	_, err := scalar(t, ir.TypeInt32).FromSQL(int64(math.MaxInt64))
	assert.True(t, IsConversionError(err))
	_, err = scalar(t, ir.TypeEnum).FromSQL(int64(42))
	assert.True(t, IsConversionError(err))
	assert.Contains(t, err.Error(), "Status")
	_, err = scalar(t, ir.TypeDouble).FromSQL("1.0")
	assert.True(t, IsConversionError(err))
}

func TestScalar_SQLValueTypes(t *testing.T) {
	tests := []struct {
		typ  ir.FieldType
		want reflect.Type
	}{
		{ir.TypeBool, reflect.TypeOf(int64(0))},
		{ir.TypeInt32, reflect.TypeOf(int32(0))},
		{ir.TypeInt64, reflect.TypeOf(int64(0))},
		{ir.TypeFloat, reflect.TypeOf(float32(0))},
		{ir.TypeDouble, reflect.TypeOf(float64(0))},
		{ir.TypeString, reflect.TypeOf("")},
		{ir.TypeBytes, reflect.TypeOf([]byte(nil))},
		{ir.TypeEnum, reflect.TypeOf(int32(0))},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, scalar(t, tt.typ).SQLValueType(), tt.typ.String())
	}
}

func TestNewScalarConverter_Unsupported(t *testing.T) {
	for _, fd := range []*ir.FieldDescriptor{
		{Name: "m", Number: 1, Type: ir.TypeMessage, MessageName: "Other"},
		{Name: "r", Number: 2, Type: ir.TypeInt32, Repeated: true},
		{Name: "x", Number: 3, Type: ir.TypeInvalid},
	} {
		_, err := NewScalarConverter(fd)
		var ce *ConversionError
		require.ErrorAs(t, err, &ce, fd.Name)
		assert.Equal(t, ErrCodeUnsupportedType, ce.Code)
	}
}

func TestValueText_Truncates(t *testing.T) {
	assert.Equal(t, "<nil>", ValueText(nil))
	assert.Equal(t, "int(3)", ValueText(3))
	assert.Equal(t, `[]byte("ab")`, ValueText([]byte("ab")))
	long := ValueText(string(make([]byte, 200)))
	assert.LessOrEqual(t, len(long), maxValueText+3)

	// "string(" leaves the cut in the middle of a two-byte rune.
	accented := ValueText(strings.Repeat("é", 100))
	assert.True(t, utf8.ValidString(accented), accented)
	assert.True(t, strings.HasSuffix(accented, "é..."), accented)
}
