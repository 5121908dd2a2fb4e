package sqlexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperator_Table(t *testing.T) {
	tests := []struct {
		op          Operator
		token       string
		precedence  int
		category    Category
		associative bool
	}{
		{OpMul, "*", 60, CategoryArithmetic, true},
		{OpDiv, "/", 60, CategoryArithmetic, false},
		{OpDivRound, " DIV ", 60, CategoryArithmetic, false},
		{OpMod, "%", 60, CategoryArithmetic, false},
		{OpAdd, "+", 50, CategoryArithmetic, true},
		{OpSub, "-", 50, CategoryArithmetic, false},
		{OpEq, "=", 40, CategoryRelational, false},
		{OpNe, "<>", 40, CategoryRelational, false},
		{OpLt, "<", 40, CategoryRelational, false},
		{OpLte, "<=", 40, CategoryRelational, false},
		{OpGt, ">", 40, CategoryRelational, false},
		{OpGte, ">=", 40, CategoryRelational, false},
		{OpLike, " LIKE ", 40, CategoryRelational, false},
		{OpNotLike, " NOT LIKE ", 40, CategoryRelational, false},
		{OpNot, "NOT ", 30, CategoryLogical, false},
		{OpAnd, " AND ", 20, CategoryLogical, true},
		{OpXor, " XOR ", 15, CategoryLogical, true},
		{OpOr, " OR ", 10, CategoryLogical, true},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.True(t, tt.op.Valid())
			assert.Equal(t, tt.token, tt.op.Token())
			assert.Equal(t, tt.precedence, tt.op.Precedence())
			assert.Equal(t, tt.category, tt.op.Category())
			assert.Equal(t, tt.associative, tt.op.Associative())
			assert.Less(t, tt.op.Precedence(), LeafPrecedence)
		})
	}
}

func TestOperator_Unknown(t *testing.T) {
	op := Operator(999)
	assert.False(t, op.Valid())
	assert.Equal(t, "UNKNOWN", op.String())
	assert.Equal(t, "unknown", Category(0).String())
}

func TestParseOperator(t *testing.T) {
	for _, name := range []string{"add", "ADD", "not_like", "Div_Round", "xor"} {
		op, ok := ParseOperator(name)
		require.True(t, ok, name)
		assert.True(t, op.Valid())
	}
	op, _ := ParseOperator("not_like")
	assert.Equal(t, OpNotLike, op)

	_, ok := ParseOperator("plus")
	assert.False(t, ok)
}

func TestNeedsParens_Leaves(t *testing.T) {
	for _, op := range []Operator{OpMul, OpAdd, OpEq, OpNot, OpAnd, OpOr} {
		assert.False(t, needsParens(Col("a"), op, true))
		assert.False(t, needsParens(Lit(1), op, true))
		assert.False(t, needsParens(Count(), op, true))
	}
}
