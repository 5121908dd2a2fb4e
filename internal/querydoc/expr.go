package querydoc

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
)

// ParseExpr converts a YAML node into an expression.
func ParseExpr(n *yaml.Node) (sqlexpr.Expression, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return parseScalar(n)
	case yaml.MappingNode:
		return parseMapping(n)
	case yaml.AliasNode:
		return ParseExpr(n.Alias)
	default:
		return nil, nodeError(n, "expected a scalar or a mapping")
	}
}

// parseScalar: strings are columns, other scalars literals.
func parseScalar(n *yaml.Node) (sqlexpr.Expression, error) {
	if n.ShortTag() == "!!str" {
		col, err := sqlexpr.NewColumn(n.Value)
		if err != nil {
			return nil, nodeError(n, "%w", err)
		}
		return col, nil
	}
	v, err := scalarValue(n)
	if err != nil {
		return nil, err
	}
	return sqlexpr.Lit(v), nil
}

// scalarValue decodes a scalar node into bool, int64, float64, string or
// nil.
func scalarValue(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, nodeError(n, "literal value must be a scalar")
	}
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, nodeError(n, "%w", err)
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, nodeError(n, "%w", err)
		}
		return i, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, nodeError(n, "%w", err)
		}
		return f, nil
	case "!!str":
		return n.Value, nil
	default:
		return nil, nodeError(n, "unsupported literal tag %s", n.ShortTag())
	}
}

func parseMapping(n *yaml.Node) (sqlexpr.Expression, error) {
	fields := mappingFields(n)
	if fn, ok := fields["func"]; ok {
		return parseCall(n, fn, fields)
	}
	if len(fields) != 1 {
		return nil, nodeError(n, "expression mapping must have exactly one key, got %d", len(fields))
	}
	key, value := n.Content[0], n.Content[1]
	if key.Value == "value" {
		v, err := scalarValue(value)
		if err != nil {
			return nil, err
		}
		return sqlexpr.Lit(v), nil
	}

	op, ok := sqlexpr.ParseOperator(key.Value)
	if !ok {
		return nil, nodeError(key, "unknown operator %q", key.Value)
	}
	operands, err := parseOperands(value)
	if err != nil {
		return nil, err
	}

	var expr sqlexpr.Expression
	switch op.Category() {
	case sqlexpr.CategoryArithmetic, sqlexpr.CategoryRelational:
		if len(operands) != 2 {
			return nil, nodeError(value, "%s takes 2 operands, got %d", key.Value, len(operands))
		}
		if op.Category() == sqlexpr.CategoryArithmetic {
			expr, err = sqlexpr.NewArithmetic(op, operands[0], operands[1])
		} else {
			expr, err = sqlexpr.NewRelational(op, operands[0], operands[1])
		}
	default:
		if op == sqlexpr.OpNot {
			if len(operands) != 1 {
				return nil, nodeError(value, "not takes 1 operand, got %d", len(operands))
			}
			expr, err = sqlexpr.NewNegation(operands[0])
		} else {
			expr, err = sqlexpr.NewLogical(op, operands...)
		}
	}
	if err != nil {
		return nil, nodeError(key, "%w", err)
	}
	return expr, nil
}

// parseOperands accepts a sequence of expressions or a single expression.
func parseOperands(n *yaml.Node) ([]sqlexpr.Expression, error) {
	if n.Kind != yaml.SequenceNode {
		e, err := ParseExpr(n)
		if err != nil {
			return nil, err
		}
		return []sqlexpr.Expression{e}, nil
	}
	out := make([]sqlexpr.Expression, len(n.Content))
	for i, c := range n.Content {
		e, err := ParseExpr(c)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func parseCall(n, fn *yaml.Node, fields map[string]*yaml.Node) (sqlexpr.Expression, error) {
	for k := range fields {
		if k != "func" && k != "args" {
			return nil, nodeError(n, "unexpected key %q in function call", k)
		}
	}
	var args []sqlexpr.Expression
	if a, ok := fields["args"]; ok {
		var err error
		if args, err = parseOperands(a); err != nil {
			return nil, err
		}
	}
	call, err := sqlexpr.NewCall(fn.Value, args...)
	if err != nil {
		return nil, nodeError(fn, "%w", err)
	}
	return call, nil
}

// parseSelectItem accepts an expression or {expr: E, as: alias}.
func parseSelectItem(n *yaml.Node) (*sqlclause.SelectItem, error) {
	if n.Kind == yaml.MappingNode {
		fields := mappingFields(n)
		if exprNode, ok := fields["expr"]; ok {
			for k := range fields {
				if k != "expr" && k != "as" {
					return nil, nodeError(n, "unexpected key %q in select item", k)
				}
			}
			expr, err := ParseExpr(exprNode)
			if err != nil {
				return nil, err
			}
			alias := ""
			if as, ok := fields["as"]; ok {
				alias = as.Value
			}
			return sqlclause.NewSelectItem(expr, alias)
		}
	}
	expr, err := ParseExpr(n)
	if err != nil {
		return nil, err
	}
	return sqlclause.NewSelectItem(expr, "")
}

// parseOrderItem accepts an expression (no direction), {asc: E} or
// {desc: E}.
func parseOrderItem(n *yaml.Node) (*sqlclause.OrderByItem, error) {
	if n.Kind == yaml.MappingNode && len(n.Content) == 2 {
		dir := sqlclause.DirectionNone
		switch n.Content[0].Value {
		case "asc":
			dir = sqlclause.Asc
		case "desc":
			dir = sqlclause.Desc
		}
		if dir != sqlclause.DirectionNone {
			expr, err := ParseExpr(n.Content[1])
			if err != nil {
				return nil, err
			}
			return sqlclause.NewOrderByItem(expr, dir)
		}
	}
	expr, err := ParseExpr(n)
	if err != nil {
		return nil, err
	}
	return sqlclause.NewOrderByItem(expr, sqlclause.DirectionNone)
}

func mappingFields(n *yaml.Node) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = n.Content[i+1]
	}
	return fields
}

// nodeError prefixes an error with the node's line. format may use %w.
func nodeError(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: "+format, append([]any{n.Line}, args...)...)
}
