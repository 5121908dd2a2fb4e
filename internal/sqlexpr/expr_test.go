package sqlexpr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// substitute replaces each ? in template with the solid form of the
// matching value, left to right.
func substitute(t *testing.T, template string, vals []Value) string {
	t.Helper()
	var sb strings.Builder
	i := 0
	for _, r := range template {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}
		require.Less(t, i, len(vals), "more placeholders than values in %q", template)
		sb.WriteString(vals[i].String())
		i++
	}
	require.Equal(t, len(vals), i, "more values than placeholders in %q", template)
	return sb.String()
}

func render(t *testing.T, o Object) (string, string, []Value) {
	t.Helper()
	tmpl, err := Template(o)
	require.NoError(t, err)
	return tmpl, Solid(o), Values(o)
}

func TestColumn_RejectsBlankName(t *testing.T) {
	for _, name := range []string{"", " ", "\t"} {
		_, err := NewColumn(name)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
	assert.Panics(t, func() { Col("") })

	c, err := NewColumn("a")
	require.NoError(t, err)
	assert.Equal(t, "a", c.Name())
}

func TestColumn_Render(t *testing.T) {
	tmpl, solid, vals := render(t, Col("a"))
	assert.Equal(t, "a", tmpl)
	assert.Equal(t, "a", solid)
	assert.Empty(t, vals)
}

func TestLiteral_Render(t *testing.T) {
	tmpl, solid, vals := render(t, Lit("it's"))
	assert.Equal(t, "?", tmpl)
	assert.Equal(t, "'it''s'", solid)
	require.Len(t, vals, 1)
	assert.Equal(t, "it's", vals[0].Get())
}

func TestFieldValues(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		template string
		solid    string
		values   []any
	}{
		{"add", FieldAdd("a", 1), "a+?", "a+1", []any{1}},
		{"subtract", FieldSubtract("a", 2), "a-?", "a-2", []any{2}},
		{"multiply", FieldMultiply("a", 3), "a*?", "a*3", []any{3}},
		{"divide", FieldDivide("a", 4), "a/?", "a/4", []any{4}},
		{"div round", FieldDivRound("a", 5), "a DIV ?", "a DIV 5", []any{5}},
		{"mod", FieldMod("a", 6), "a%?", "a%6", []any{6}},
		{"eq", FieldEq("a", 1), "a=?", "a=1", []any{1}},
		{"ne", FieldNe("a", "x"), "a<>?", "a<>'x'", []any{"x"}},
		{"lt", FieldLt("a", 1.5), "a<?", "a<1.5", []any{1.5}},
		{"lte", FieldLte("a", int64(7)), "a<=?", "a<=7", []any{int64(7)}},
		{"gt", FieldGt("a", true), "a>?", "a>TRUE", []any{true}},
		{"gte", FieldGte("a", nil), "a>=?", "a>=NULL", []any{nil}},
		{"like", FieldLike("name", "bo%"), "name LIKE ?", "name LIKE 'bo%'", []any{"bo%"}},
		{"not like", FieldNotLike("name", "bo%"), "name NOT LIKE ?", "name NOT LIKE 'bo%'", []any{"bo%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, solid, vals := render(t, tt.expr)
			assert.Equal(t, tt.template, tmpl)
			assert.Equal(t, tt.solid, solid)
			assert.Equal(t, tt.values, ValuesToArgs(vals))
			assert.Equal(t, solid, substitute(t, tmpl, vals))
		})
	}
}

func TestFieldAndField(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{FieldsEq("a", "b"), "a=b"},
		{FieldsNe("a", "b"), "a<>b"},
		{FieldsLt("a", "b"), "a<b"},
		{FieldsLte("a", "b"), "a<=b"},
		{FieldsGt("a", "b"), "a>b"},
		{FieldsGte("a", "b"), "a>=b"},
		{FieldsAdd("a", "b"), "a+b"},
		{FieldsSubtract("a", "b"), "a-b"},
		{FieldsMultiply("a", "b"), "a*b"},
		{FieldsDivide("a", "b"), "a/b"},
		{FieldsDivRound("a", "b"), "a DIV b"},
		{FieldsMod("a", "b"), "a%b"},
		{FieldsAnd("a", "b"), "a AND b"},
		{FieldsOr("a", "b"), "a OR b"},
		{FieldsXor("a", "b"), "a XOR b"},
		{FieldNot("a"), "NOT a"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			tmpl, solid, vals := render(t, tt.expr)
			assert.Equal(t, tt.want, tmpl)
			assert.Equal(t, tt.want, solid)
			assert.Empty(t, vals)
		})
	}
}

func TestColumnAndExpression(t *testing.T) {
	e := ColumnEq("a", FieldAdd("b", 1))
	tmpl, solid, vals := render(t, e)
	assert.Equal(t, "a=b+?", tmpl)
	assert.Equal(t, "a=b+1", solid)
	assert.Len(t, vals, 1)

	l := ColumnAnd("flag", FieldGt("b", 2))
	tmpl, _, _ = render(t, l)
	assert.Equal(t, "flag AND b>?", tmpl)
}

func TestConstructors_RejectInvalidInput(t *testing.T) {
	_, err := NewArithmetic(OpEq, Col("a"), Col("b"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewRelational(OpAdd, Col("a"), Col("b"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewRelational(OpEq, nil, Col("b"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewLogical(OpNot, Col("a"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewLogical(OpAnd)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewLogical(OpOr, Col("a"), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewNegation(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewCall(" ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Panics(t, func() { Eq(Col("a"), nil) })
	assert.Panics(t, func() { FieldEq("", 1) })
	assert.Panics(t, func() { And() })
}

func TestLogical_FlatNary(t *testing.T) {
	e := And(FieldEq("a", 1), FieldGt("b", 2), FieldLt("c", 3))
	tmpl, solid, vals := render(t, e)
	assert.Equal(t, "a=? AND b>? AND c<?", tmpl)
	assert.Equal(t, "a=1 AND b>2 AND c<3", solid)
	assert.Equal(t, []any{1, 2, 3}, ValuesToArgs(vals))

	nested := And(And(FieldEq("a", 1), FieldEq("b", 2)), And(FieldEq("c", 3), FieldEq("d", 4)))
	tmpl, _, _ = render(t, nested)
	assert.Equal(t, "a=? AND b=? AND c=? AND d=?", tmpl)
}

func TestLogical_SingleOperand(t *testing.T) {
	tmpl, _, _ := render(t, Or(FieldEq("a", 1)))
	assert.Equal(t, "a=?", tmpl)
}

func TestPrecedence_Parenthesization(t *testing.T) {
	a, b, c, d := Col("a"), Col("b"), Col("c"), Col("d")

	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{"higher precedence child", Add(Multiply(a, b), c), "a*b+c"},
		{"higher precedence right child", Add(a, Multiply(b, c)), "a+b*c"},
		{"lower precedence left child", Multiply(Add(a, b), c), "(a+b)*c"},
		{"lower precedence right child", Multiply(a, Add(b, c)), "a*(b+c)"},
		{"same op associative right", Add(a, Add(b, c)), "a+b+c"},
		{"same op left", Subtract(Subtract(a, b), c), "a-b-c"},
		{"non associative right", Subtract(a, Subtract(b, c)), "a-(b-c)"},
		{"mixed equal precedence right", Subtract(a, Add(b, c)), "a-(b+c)"},
		{"mixed equal precedence right of add", Add(a, Subtract(b, c)), "a+(b-c)"},
		{"division right", Divide(a, Multiply(b, c)), "a/(b*c)"},
		{"multiply right of multiply", Multiply(a, Multiply(b, c)), "a*b*c"},
		{"div round right", DivRound(a, Mod(b, c)), "a DIV (b%c)"},
		{"relational over arithmetic", Eq(Add(a, b), Multiply(c, d)), "a+b=c*d"},
		{"relational as arithmetic operand", Add(Eq(a, b), c), "(a=b)+c"},
		{"relational right of relational", Eq(a, Eq(b, c)), "a=(b=c)"},
		{"relational left of relational", Eq(Eq(a, b), c), "a=b=c"},
		{"and over or", And(Or(a, b), c), "(a OR b) AND c"},
		{"or over and", Or(And(a, b), c), "a AND b OR c"},
		{"xor between and and or", Or(Xor(a, And(b, c)), d), "a XOR b AND c OR d"},
		{"or inside xor", Xor(Or(a, b), c), "(a OR b) XOR c"},
		{"not over relational", Not(Eq(a, b)), "NOT a=b"},
		{"not over and", Not(And(a, b)), "NOT (a AND b)"},
		{"not over not", Not(Not(a)), "NOT NOT a"},
		{"not inside and", And(Not(a), b), "NOT a AND b"},
		{"not inside arithmetic", Add(Not(a), b), "(NOT a)+b"},
		{"call is a leaf", Multiply(Count(), Sum(Add(a, b))), "COUNT(*)*SUM(a+b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, solid, vals := render(t, tt.expr)
			assert.Equal(t, tt.want, tmpl)
			assert.Equal(t, tt.want, solid)
			assert.Empty(t, vals)
		})
	}
}

func TestTemplateValueEquivalence(t *testing.T) {
	exprs := []Expression{
		And(
			Or(FieldEq("a", "x?y"), FieldGt("b", -3)),
			Not(Xor(FieldLike("c", "%'%"), FieldsEq("d", "e"))),
			Gte(Subtract(Lit(10), Multiply(Col("f"), Lit(2.5))), Lit(nil)),
		),
		Eq(Func("COALESCE", Col("a"), Lit(0)), Add(Lit(1), Lit(int64(-2)))),
		Mod(DivRound(Lit(uint8(7)), Col("x")), Lit([]byte{0xca, 0xfe})),
	}

	for _, e := range exprs {
		tmpl, solid, vals := render(t, e)
		assert.Equal(t, solid, substitute(t, tmpl, vals))
		assert.Equal(t, len(vals), strings.Count(tmpl, "?"))
	}
}

func TestCollectValues_AppendsToCallerSlice(t *testing.T) {
	seed := []Value{NewValue("seed")}
	vals := FieldEq("a", 1).CollectValues(seed)
	require.Len(t, vals, 2)
	assert.Equal(t, "seed", vals[0].Get())
	assert.Equal(t, 1, vals[1].Get())
}

func TestAppend_ChainsIntoCallerBuffer(t *testing.T) {
	b := []byte("SELECT ")
	b, err := FieldAdd("a", 1).AppendTemplate(b)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a+?", string(b))
	assert.Equal(t, "SELECT a+1", string(FieldAdd("a", 1).AppendSolid([]byte("SELECT "))))
}

func TestAccessors(t *testing.T) {
	e := FieldsAdd("a", "b")
	assert.Equal(t, OpAdd, e.Operator())
	assert.Equal(t, "a", e.Left().(*Column).Name())
	assert.Equal(t, "b", e.Right().(*Column).Name())

	l := And(Col("a"), Col("b"))
	ops := l.Operands()
	ops[0] = Col("z")
	assert.Equal(t, "a", l.Operands()[0].(*Column).Name())

	n := FieldNot("a")
	assert.Equal(t, "a", n.Operand().(*Column).Name())

	c := Count()
	assert.Equal(t, "COUNT", c.Name())
	assert.Len(t, c.Args(), 1)
}

func TestWalk_VisitsEveryNode(t *testing.T) {
	e := And(
		FieldGte("age", 18),
		Not(Xor(Col("a"), DivRound(Col("b"), Lit(2)))),
		Gt(Sum(Col("total")), Lit(100)),
	)

	var ops []Operator
	var leaves int
	Walk(e, func(n Expression) bool {
		if op, ok := operatorOf(n); ok {
			ops = append(ops, op)
		}
		switch n.(type) {
		case *Column, *Literal:
			leaves++
		}
		return true
	})
	assert.Equal(t, []Operator{OpAnd, OpGte, OpNot, OpXor, OpDivRound, OpGt}, ops)
	assert.Equal(t, 7, leaves)

	var visited int
	Walk(e, func(n Expression) bool {
		visited++
		_, isNot := n.(*Negation)
		return !isNot
	})
	assert.Equal(t, 9, visited)

	Walk(nil, func(Expression) bool {
		t.Fatal("walked a nil expression")
		return false
	})
}
