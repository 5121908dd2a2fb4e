// Package sqlexpr provides the typed SQL expression tree used to build
// statements without hand-written SQL.
//
// Every node implements Object and can be rendered two ways from the same
// structure:
//
//	template: a=? AND b+?>c     (placeholders, executed)
//	solid:    a=1 AND b+2>c     (literals inlined, logged only)
//
// CollectValues walks the tree in the same left-to-right order the template
// is written, so the i-th placeholder always binds the i-th collected Value.
// Substituting each placeholder with Value.AppendSolid reproduces the solid
// rendering byte for byte.
//
// # Node types
//
// Expression is a sealed interface. Only these types implement it:
//   - Column: a column reference, never parenthesized
//   - Literal: a bound value, rendered as ? or as a formatted literal
//   - Arithmetic: + - * / DIV %
//   - Relational: = <> < <= > >= LIKE NOT LIKE
//   - Logical: n-ary AND / OR / XOR
//   - Negation: unary NOT
//   - Call: a function call such as COUNT(*)
//
// Rendering and value collection dispatch through a single type switch per
// operation (see render.go), so adding a node type means touching exactly
// those switches.
//
// # Precedence
//
// Operands are parenthesized only when required. See Operator.Precedence for
// the total order.
//
// # Construction errors
//
// NewColumn and the New* composite constructors return ErrInvalidArgument for
// blank identifiers, nil operands and operators of the wrong family. The short
// factories (Col, Eq, Add, And, FieldEq, ...) panic on the same conditions,
// in the manner of regexp.MustCompile, so that trees compose as expressions.
//
// Trees are immutable once built and safe for concurrent read-only rendering.
package sqlexpr
