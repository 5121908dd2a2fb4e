package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/protosql/internal/ir"
)

func repeatedField(ft ir.FieldType) *ir.FieldDescriptor {
	fd := scalarField(ft)
	fd.Repeated = true
	return fd
}

func TestRepeatedConverter_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  ir.FieldType
		in   any
		sql  string
		want []any
	}{
		{"strings", ir.TypeString, []string{"a", "b\"c"}, `["a","b\"c"]`, []any{"a", "b\"c"}},
		{"int64 from []int", ir.TypeInt64, []int{3, 1, 2}, `[3,1,2]`, []any{int64(3), int64(1), int64(2)}},
		{"bools", ir.TypeBool, []any{true, false}, `[1,0]`, []any{true, false}},
		{"enums", ir.TypeEnum, []any{ir.EnumValue{Name: "ACTIVE", Number: 1}}, `[1]`,
			[]any{ir.EnumValue{Name: "ACTIVE", Number: 1}}},
		{"empty", ir.TypeDouble, []float64{}, `[]`, []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewRepeatedConverter(repeatedField(tt.typ))
			require.NoError(t, err)

			sqlValue, err := c.ToSQL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sqlValue)

			got, err := c.FromSQL(sqlValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepeatedConverter_Rejects(t *testing.T) {
	c, err := NewRepeatedConverter(repeatedField(ir.TypeInt32))
	require.NoError(t, err)

	_, err = c.ToSQL(5)
	assert.True(t, IsConversionError(err))
	_, err = c.ToSQL([]any{1, "two"})
	assert.True(t, IsConversionError(err))
	assert.Contains(t, err.Error(), "element 1")

	got, err := c.FromSQL(nil)
	require.NoError(t, err)
	assert.Equal(t, []any{}, got)

	_, err = c.FromSQL(`{"a":1}`)
	var ce *ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeMalformedPayload, ce.Code)

	for _, payload := range []string{`[1,2]trailing`, `[1,2][3]`} {
		_, err = c.FromSQL(payload)
		require.ErrorAs(t, err, &ce, payload)
		assert.Equal(t, ErrCodeMalformedPayload, ce.Code, payload)
		assert.Contains(t, err.Error(), "trailing data", payload)
	}

	got, err = c.FromSQL("[1,2]\n")
	require.NoError(t, err)
	assert.Equal(t, []any{int32(1), int32(2)}, got)

	_, err = NewRepeatedConverter(repeatedField(ir.TypeBytes))
	assert.True(t, IsConversionError(err))
	_, err = NewRepeatedConverter(scalarField(ir.TypeInt32))
	assert.True(t, IsConversionError(err))
}
