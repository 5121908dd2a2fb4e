package sqlclause

import "github.com/roach88/protosql/internal/sqlexpr"

type appendFunc func(b []byte, o sqlexpr.Object) ([]byte, error)

func appendTemplate(b []byte, o sqlexpr.Object) ([]byte, error) {
	return o.AppendTemplate(b)
}

func appendSolid(b []byte, o sqlexpr.Object) ([]byte, error) {
	return o.AppendSolid(b), nil
}

// appendJoined renders parts separated by sep. A part that renders nothing
// also takes its separator back out, so empty clauses leave no trace.
func appendJoined(b []byte, sep string, parts []sqlexpr.Object, render appendFunc) ([]byte, error) {
	start := len(b)
	for _, p := range parts {
		mark := len(b)
		if mark > start {
			b = append(b, sep...)
		}
		body := len(b)
		var err error
		b, err = render(b, p)
		if err != nil {
			return b, err
		}
		if len(b) == body {
			b = b[:mark]
		}
	}
	return b, nil
}

func collectAll(vals []sqlexpr.Value, parts []sqlexpr.Object) []sqlexpr.Value {
	for _, p := range parts {
		vals = p.CollectValues(vals)
	}
	return vals
}

// toExpression turns a plain Go value into a literal; expressions pass
// through unchanged.
func toExpression(v any) sqlexpr.Expression {
	if e, ok := v.(sqlexpr.Expression); ok {
		return e
	}
	return sqlexpr.Lit(v)
}
