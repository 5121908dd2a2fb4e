package sqlexpr

// Rendering and value collection for every Expression type live here, one
// switch per operation.

type renderMode int

const (
	modeTemplate renderMode = iota
	modeSolid
)

func appendExpr(b []byte, e Expression, mode renderMode) []byte {
	switch e := e.(type) {
	case *Column:
		return append(b, e.name...)
	case *Literal:
		if mode == modeTemplate {
			return append(b, '?')
		}
		return e.value.AppendSolid(b)
	case *Arithmetic:
		return appendBinary(b, e.op, e.left, e.right, mode)
	case *Relational:
		return appendBinary(b, e.op, e.left, e.right, mode)
	case *Logical:
		for i, operand := range e.operands {
			if i > 0 {
				b = append(b, e.op.Token()...)
			}
			b = appendOperand(b, operand, e.op, i > 0, mode)
		}
		return b
	case *Negation:
		b = append(b, OpNot.Token()...)
		return appendOperand(b, e.operand, OpNot, false, mode)
	case *Call:
		b = append(b, e.name...)
		b = append(b, '(')
		for i, arg := range e.args {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendExpr(b, arg, mode)
		}
		return append(b, ')')
	default:
		panic("sqlexpr: unknown expression type")
	}
}

func appendBinary(b []byte, op Operator, left, right Expression, mode renderMode) []byte {
	b = appendOperand(b, left, op, false, mode)
	b = append(b, op.Token()...)
	return appendOperand(b, right, op, true, mode)
}

func appendOperand(b []byte, operand Expression, outer Operator, right bool, mode renderMode) []byte {
	if !needsParens(operand, outer, right) {
		return appendExpr(b, operand, mode)
	}
	b = append(b, '(')
	b = appendExpr(b, operand, mode)
	return append(b, ')')
}

func collectExpr(vals []Value, e Expression) []Value {
	switch e := e.(type) {
	case *Column:
		return vals
	case *Literal:
		return append(vals, e.value)
	case *Arithmetic:
		return collectExpr(collectExpr(vals, e.left), e.right)
	case *Relational:
		return collectExpr(collectExpr(vals, e.left), e.right)
	case *Logical:
		for _, operand := range e.operands {
			vals = collectExpr(vals, operand)
		}
		return vals
	case *Negation:
		return collectExpr(vals, e.operand)
	case *Call:
		for _, arg := range e.args {
			vals = collectExpr(vals, arg)
		}
		return vals
	default:
		panic("sqlexpr: unknown expression type")
	}
}

func (c *Column) AppendTemplate(b []byte) ([]byte, error) { return appendExpr(b, c, modeTemplate), nil }
func (c *Column) AppendSolid(b []byte) []byte { return appendExpr(b, c, modeSolid) }
func (c *Column) CollectValues(vals []Value) []Value { return collectExpr(vals, c) }
func (l *Literal) AppendTemplate(b []byte) ([]byte, error) { return appendExpr(b, l, modeTemplate), nil }
func (l *Literal) AppendSolid(b []byte) []byte { return appendExpr(b, l, modeSolid) }
func (l *Literal) CollectValues(vals []Value) []Value { return collectExpr(vals, l) }
func (a *Arithmetic) AppendTemplate(b []byte) ([]byte, error) { return appendExpr(b, a, modeTemplate), nil }
func (a *Arithmetic) AppendSolid(b []byte) []byte { return appendExpr(b, a, modeSolid) }
func (a *Arithmetic) CollectValues(vals []Value) []Value { return collectExpr(vals, a) }
func (r *Relational) AppendTemplate(b []byte) ([]byte, error) { return appendExpr(b, r, modeTemplate), nil }
func (r *Relational) AppendSolid(b []byte) []byte { return appendExpr(b, r, modeSolid) }
func (r *Relational) CollectValues(vals []Value) []Value { return collectExpr(vals, r) }
func (l *Logical) AppendTemplate(b []byte) ([]byte, error) { return appendExpr(b, l, modeTemplate), nil }
func (l *Logical) AppendSolid(b []byte) []byte { return appendExpr(b, l, modeSolid) }
func (l *Logical) CollectValues(vals []Value) []Value { return collectExpr(vals, l) }
func (n *Negation) AppendTemplate(b []byte) ([]byte, error) { return appendExpr(b, n, modeTemplate), nil }
func (n *Negation) AppendSolid(b []byte) []byte { return appendExpr(b, n, modeSolid) }
func (n *Negation) CollectValues(vals []Value) []Value { return collectExpr(vals, n) }
func (c *Call) AppendTemplate(b []byte) ([]byte, error) { return appendExpr(b, c, modeTemplate), nil }
func (c *Call) AppendSolid(b []byte) []byte { return appendExpr(b, c, modeSolid) }
func (c *Call) CollectValues(vals []Value) []Value { return collectExpr(vals, c) }
