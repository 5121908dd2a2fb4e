package sqlexpr

import "strings"

// Category groups operators into the three families an expression can use.
type Category int

const (
	CategoryArithmetic Category = iota + 1
	CategoryRelational
	CategoryLogical
)

// String returns the family name.
func (c Category) String() string {
	switch c {
	case CategoryArithmetic:
		return "arithmetic"
	case CategoryRelational:
		return "relational"
	case CategoryLogical:
		return "logical"
	default:
		return "unknown"
	}
}

// Operator is a named SQL operator token with a fixed precedence.
type Operator int

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
	OpDivRound
	OpMod
	OpEq
	OpNe
	OpLt
	OpLte
	OpGt
	OpGte
	OpLike
	OpNotLike
	OpAnd
	OpOr
	OpXor
	OpNot
)

// LeafPrecedence is reported by columns, literals and calls. It is above
// every operator, so leaves are never parenthesized.
const LeafPrecedence = 100

type operatorInfo struct {
	name        string
	token       string
	precedence  int
	category    Category
	associative bool
}

// Total order, higher binds tighter:
//
//	60  * / DIV %
//	50  + -
//	40  = <> < <= > >= LIKE NOT LIKE
//	30  NOT
//	20  AND
//	15  XOR
//	10  OR
var operators = map[Operator]operatorInfo{
	OpAdd:      {"ADD", "+", 50, CategoryArithmetic, true},
	OpSub:      {"SUB", "-", 50, CategoryArithmetic, false},
	OpMul:      {"MUL", "*", 60, CategoryArithmetic, true},
	OpDiv:      {"DIV", "/", 60, CategoryArithmetic, false},
	OpDivRound: {"DIV_ROUND", " DIV ", 60, CategoryArithmetic, false},
	OpMod:      {"MOD", "%", 60, CategoryArithmetic, false},
	OpEq:       {"EQ", "=", 40, CategoryRelational, false},
	OpNe:       {"NE", "<>", 40, CategoryRelational, false},
	OpLt:       {"LT", "<", 40, CategoryRelational, false},
	OpLte:      {"LTE", "<=", 40, CategoryRelational, false},
	OpGt:       {"GT", ">", 40, CategoryRelational, false},
	OpGte:      {"GTE", ">=", 40, CategoryRelational, false},
	OpLike:     {"LIKE", " LIKE ", 40, CategoryRelational, false},
	OpNotLike:  {"NOT_LIKE", " NOT LIKE ", 40, CategoryRelational, false},
	OpAnd:      {"AND", " AND ", 20, CategoryLogical, true},
	OpOr:       {"OR", " OR ", 10, CategoryLogical, true},
	OpXor:      {"XOR", " XOR ", 15, CategoryLogical, true},
	OpNot:      {"NOT", "NOT ", 30, CategoryLogical, false},
}

// Valid reports whether op is a known operator.
func (op Operator) Valid() bool {
	_, ok := operators[op]
	return ok
}

// ParseOperator looks an operator up by its symbolic name, ignoring case:
// "add", "NOT_LIKE", "div_round".
func ParseOperator(name string) (Operator, bool) {
	for op, info := range operators {
		if strings.EqualFold(info.name, name) {
			return op, true
		}
	}
	return 0, false
}

// Name returns the symbolic name, e.g. "DIV_ROUND".
func (op Operator) Name() string {
	if info, ok := operators[op]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// String implements fmt.Stringer.
func (op Operator) String() string {
	return op.Name()
}

// Token returns the SQL text written between operands, including any
// surrounding spaces the operator needs.
func (op Operator) Token() string {
	return operators[op].token
}

// Precedence returns the binding rank; higher binds tighter.
func (op Operator) Precedence() int {
	return operators[op].precedence
}

// Category returns the operator family.
func (op Operator) Category() Category {
	return operators[op].category
}

// Associative reports whether a op (b op c) equals (a op b) op c.
func (op Operator) Associative() bool {
	return operators[op].associative
}

// needsParens reports whether operand must be wrapped when written as an
// operand of outer. right is true for every operand after the first.
//
// Lower precedence always needs parentheses. Equal precedence needs them
// only on the right, and not even there when operand uses the same
// associative operator (a+(b+c) is written a+b+c).
func needsParens(operand Expression, outer Operator, right bool) bool {
	p := operand.Precedence()
	if p != outer.Precedence() {
		return p < outer.Precedence()
	}
	if !right {
		return false
	}
	inner, ok := operatorOf(operand)
	return !ok || inner != outer || !outer.Associative()
}
