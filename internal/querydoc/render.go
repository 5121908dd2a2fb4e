package querydoc

import (
	"strings"

	"github.com/roach88/protosql/internal/sqlexpr"
)

// Rendered holds the three renderings of a statement.
type Rendered struct {
	Template string   `json:"template"`
	Solid    string   `json:"solid"`
	Values   []string `json:"values"`
}

// Render renders o in template and solid form and lists its bound values
// in solid notation.
func Render(o sqlexpr.Object) (*Rendered, error) {
	tmpl, err := sqlexpr.Template(o)
	if err != nil {
		return nil, err
	}
	vals := sqlexpr.Values(o)
	out := &Rendered{Template: tmpl, Solid: sqlexpr.Solid(o), Values: make([]string, len(vals))}
	for i, v := range vals {
		out.Values[i] = v.String()
	}
	return out, nil
}

// Text formats r as three labelled lines.
func (r *Rendered) Text() string {
	var sb strings.Builder
	sb.WriteString("template: ")
	sb.WriteString(r.Template)
	sb.WriteString("\nsolid:    ")
	sb.WriteString(r.Solid)
	sb.WriteString("\nvalues:   [")
	sb.WriteString(strings.Join(r.Values, ", "))
	sb.WriteString("]\n")
	return sb.String()
}
