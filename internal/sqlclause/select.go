package sqlclause

import (
	"strings"

	"github.com/roach88/protosql/internal/sqlexpr"
)

// SelectItem is one entry of a select list: an expression and an optional
// alias.
type SelectItem struct {
	expr  sqlexpr.Expression
	alias string
}

// NewSelectItem returns expr AS alias. A blank alias is omitted.
func NewSelectItem(expr sqlexpr.Expression, alias string) (*SelectItem, error) {
	if expr == nil {
		return nil, sqlexpr.InvalidArgument("select item expression is nil")
	}
	return &SelectItem{expr: expr, alias: alias}, nil
}

// Item is like NewSelectItem but panics on a nil expression.
func Item(expr sqlexpr.Expression, alias string) *SelectItem {
	it, err := NewSelectItem(expr, alias)
	if err != nil {
		panic(err)
	}
	return it
}

// Expression returns the selected expression.
func (s *SelectItem) Expression() sqlexpr.Expression { return s.expr }

// Alias returns the alias, possibly empty.
func (s *SelectItem) Alias() string { return s.alias }

func (s *SelectItem) AppendTemplate(b []byte) ([]byte, error) {
	b, err := s.expr.AppendTemplate(b)
	if err != nil {
		return b, err
	}
	return s.appendAlias(b), nil
}

func (s *SelectItem) AppendSolid(b []byte) []byte {
	return s.appendAlias(s.expr.AppendSolid(b))
}

func (s *SelectItem) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return s.expr.CollectValues(vals)
}

func (s *SelectItem) appendAlias(b []byte) []byte {
	if strings.TrimSpace(s.alias) == "" {
		return b
	}
	b = append(b, " AS "...)
	return append(b, s.alias...)
}

// SelectClause is an ordered select list.
type SelectClause struct {
	items []*SelectItem
}

// Select returns an empty select list.
func Select() *SelectClause {
	return &SelectClause{}
}

// Select appends each expression without an alias.
func (s *SelectClause) Select(exprs ...sqlexpr.Expression) *SelectClause {
	for _, e := range exprs {
		s.items = append(s.items, Item(e, ""))
	}
	return s
}

// SelectAs appends expr AS alias.
func (s *SelectClause) SelectAs(expr sqlexpr.Expression, alias string) *SelectClause {
	s.items = append(s.items, Item(expr, alias))
	return s
}

// Columns appends one column reference per name.
func (s *SelectClause) Columns(names ...string) *SelectClause {
	for _, n := range names {
		s.items = append(s.items, Item(sqlexpr.Col(n), ""))
	}
	return s
}

// Add appends prepared items.
func (s *SelectClause) Add(items ...*SelectItem) *SelectClause {
	s.items = append(s.items, items...)
	return s
}

// Items returns a copy of the select list.
func (s *SelectClause) Items() []*SelectItem {
	return append([]*SelectItem(nil), s.items...)
}

// IsEmpty reports whether the list has no items.
func (s *SelectClause) IsEmpty() bool { return len(s.items) == 0 }

func (s *SelectClause) AppendTemplate(b []byte) ([]byte, error) {
	if s.IsEmpty() {
		return b, sqlexpr.InvalidState("select list has no items")
	}
	return appendJoined(append(b, "SELECT "...), ",", s.objects(), appendTemplate)
}

func (s *SelectClause) AppendSolid(b []byte) []byte {
	b, _ = appendJoined(append(b, "SELECT "...), ",", s.objects(), appendSolid)
	return b
}

func (s *SelectClause) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, s.objects())
}

func (s *SelectClause) objects() []sqlexpr.Object {
	objs := make([]sqlexpr.Object, len(s.items))
	for i, it := range s.items {
		objs[i] = it
	}
	return objs
}
