package sqlexpr

import "strings"

// Expression is a node of the SQL expression tree.
//
// This is a sealed interface - only types in this package implement it.
type Expression interface {
	Object

	// Precedence reports the rank of the node's own operator, or
	// LeafPrecedence for columns, literals and calls.
	Precedence() int

	exprNode()
}

// Column references a table column by name.
type Column struct {
	name string
}

// NewColumn returns a column reference. The name must not be blank.
func NewColumn(name string) (*Column, error) {
	if strings.TrimSpace(name) == "" {
		return nil, InvalidArgument("column name must not be blank")
	}
	return &Column{name: name}, nil
}

// Col is like NewColumn but panics on a blank name.
func Col(name string) *Column {
	return must(NewColumn(name))
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Literal is a single bound value.
type Literal struct {
	value Value
}

// Lit wraps v as a literal. A nil v renders as NULL in solid SQL.
func Lit(v any) *Literal {
	return &Literal{value: NewValue(v)}
}

// Value returns the bound value.
func (l *Literal) Value() Value { return l.value }

// Arithmetic is a binary arithmetic expression.
type Arithmetic struct {
	op          Operator
	left, right Expression
}

// NewArithmetic builds left op right for an arithmetic op.
func NewArithmetic(op Operator, left, right Expression) (*Arithmetic, error) {
	if err := checkBinary(op, CategoryArithmetic, left, right); err != nil {
		return nil, err
	}
	return &Arithmetic{op: op, left: left, right: right}, nil
}

// Operator returns the arithmetic operator.
func (a *Arithmetic) Operator() Operator { return a.op }

// Left returns the left operand.
func (a *Arithmetic) Left() Expression { return a.left }

// Right returns the right operand.
func (a *Arithmetic) Right() Expression { return a.right }

// Relational is a binary comparison.
type Relational struct {
	op          Operator
	left, right Expression
}

// NewRelational builds left op right for a relational op.
func NewRelational(op Operator, left, right Expression) (*Relational, error) {
	if err := checkBinary(op, CategoryRelational, left, right); err != nil {
		return nil, err
	}
	return &Relational{op: op, left: left, right: right}, nil
}

// Operator returns the comparison operator.
func (r *Relational) Operator() Operator { return r.op }

// Left returns the left operand.
func (r *Relational) Left() Expression { return r.left }

// Right returns the right operand.
func (r *Relational) Right() Expression { return r.right }

// Logical joins one or more operands with AND, OR or XOR.
type Logical struct {
	op       Operator
	operands []Expression
}

// NewLogical builds an n-ary logical expression. NOT is unary; use
// NewNegation for it.
func NewLogical(op Operator, operands ...Expression) (*Logical, error) {
	if op.Category() != CategoryLogical || op == OpNot {
		return nil, InvalidArgument("%s is not an n-ary logical operator", op)
	}
	if len(operands) == 0 {
		return nil, InvalidArgument("%s needs at least one operand", op)
	}
	for i, o := range operands {
		if o == nil {
			return nil, InvalidArgument("%s operand %d is nil", op, i)
		}
	}
	return &Logical{op: op, operands: append([]Expression(nil), operands...)}, nil
}

// Operator returns the logical operator.
func (l *Logical) Operator() Operator { return l.op }

// Operands returns a copy of the operands.
func (l *Logical) Operands() []Expression {
	return append([]Expression(nil), l.operands...)
}

// Negation is NOT operand.
type Negation struct {
	operand Expression
}

// NewNegation builds NOT operand.
func NewNegation(operand Expression) (*Negation, error) {
	if operand == nil {
		return nil, InvalidArgument("NOT operand is nil")
	}
	return &Negation{operand: operand}, nil
}

// Operand returns the negated expression.
func (n *Negation) Operand() Expression { return n.operand }

// Call is a SQL function call such as COUNT(*) or SUM(amount).
type Call struct {
	name string
	args []Expression
}

// NewCall builds name(args...). The function name must not be blank.
func NewCall(name string, args ...Expression) (*Call, error) {
	if strings.TrimSpace(name) == "" {
		return nil, InvalidArgument("function name must not be blank")
	}
	for i, a := range args {
		if a == nil {
			return nil, InvalidArgument("%s argument %d is nil", name, i)
		}
	}
	return &Call{name: name, args: append([]Expression(nil), args...)}, nil
}

// Name returns the function name.
func (c *Call) Name() string { return c.name }

// Args returns a copy of the arguments.
func (c *Call) Args() []Expression {
	return append([]Expression(nil), c.args...)
}

func checkBinary(op Operator, want Category, left, right Expression) error {
	if op.Category() != want {
		return InvalidArgument("%s is not a %s operator", op, want)
	}
	if left == nil || right == nil {
		return InvalidArgument("%s operand is nil", op)
	}
	return nil
}

// operatorOf returns the operator of a composite node.
func operatorOf(e Expression) (Operator, bool) {
	switch e := e.(type) {
	case *Arithmetic:
		return e.op, true
	case *Relational:
		return e.op, true
	case *Logical:
		return e.op, true
	case *Negation:
		return OpNot, true
	default:
		return 0, false
	}
}

func (*Column) exprNode() {}
func (*Literal) exprNode() {}
func (*Arithmetic) exprNode() {}
func (*Relational) exprNode() {}
func (*Logical) exprNode() {}
func (*Negation) exprNode() {}
func (*Call) exprNode() {}

func (*Column) Precedence() int { return LeafPrecedence }
func (*Literal) Precedence() int { return LeafPrecedence }
func (a *Arithmetic) Precedence() int { return a.op.Precedence() }
func (r *Relational) Precedence() int { return r.op.Precedence() }
func (l *Logical) Precedence() int { return l.op.Precedence() }
func (*Negation) Precedence() int { return OpNot.Precedence() }
func (*Call) Precedence() int { return LeafPrecedence }

// Walk calls fn for e and then for each of its operands, depth first. fn
// returning false skips the operands of that node.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch e := e.(type) {
	case *Arithmetic:
		Walk(e.left, fn)
		Walk(e.right, fn)
	case *Relational:
		Walk(e.left, fn)
		Walk(e.right, fn)
	case *Logical:
		for _, op := range e.operands {
			Walk(op, fn)
		}
	case *Negation:
		Walk(e.operand, fn)
	case *Call:
		for _, arg := range e.args {
			Walk(arg, fn)
		}
	}
}
