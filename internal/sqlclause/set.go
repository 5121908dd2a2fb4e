package sqlclause

import "github.com/roach88/protosql/internal/sqlexpr"

// SetItem is one column=value assignment of an UPDATE.
type SetItem struct {
	column *sqlexpr.Column
	value  sqlexpr.Expression
}

// NewSetItem returns column=value.
func NewSetItem(column *sqlexpr.Column, value sqlexpr.Expression) (*SetItem, error) {
	if column == nil {
		return nil, sqlexpr.InvalidArgument("set item column is nil")
	}
	if value == nil {
		return nil, sqlexpr.InvalidArgument("set item value for %s is nil", column.Name())
	}
	return &SetItem{column: column, value: value}, nil
}

// Column returns the assigned column.
func (s *SetItem) Column() *sqlexpr.Column { return s.column }

// Value returns the assigned expression.
func (s *SetItem) Value() sqlexpr.Expression { return s.value }

func (s *SetItem) AppendTemplate(b []byte) ([]byte, error) {
	b, err := s.column.AppendTemplate(b)
	if err != nil {
		return b, err
	}
	return s.value.AppendTemplate(append(b, '='))
}

func (s *SetItem) AppendSolid(b []byte) []byte {
	return s.value.AppendSolid(append(s.column.AppendSolid(b), '='))
}

func (s *SetItem) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return s.value.CollectValues(vals)
}

// SetClause is the ordered assignment list of an UPDATE.
type SetClause struct {
	items []*SetItem
}

// Set returns an empty assignment list.
func Set() *SetClause {
	return &SetClause{}
}

// Set appends column=value. A value that is not an expression becomes a
// literal. It panics on a blank column name.
func (s *SetClause) Set(column string, value any) *SetClause {
	return s.SetExpr(column, toExpression(value))
}

// SetExpr appends column=expr.
func (s *SetClause) SetExpr(column string, expr sqlexpr.Expression) *SetClause {
	it, err := NewSetItem(sqlexpr.Col(column), expr)
	if err != nil {
		panic(err)
	}
	s.items = append(s.items, it)
	return s
}

// Add appends prepared items.
func (s *SetClause) Add(items ...*SetItem) *SetClause {
	s.items = append(s.items, items...)
	return s
}

// Items returns a copy of the assignments.
func (s *SetClause) Items() []*SetItem {
	return append([]*SetItem(nil), s.items...)
}

// IsEmpty reports whether there are no assignments.
func (s *SetClause) IsEmpty() bool { return len(s.items) == 0 }

func (s *SetClause) AppendTemplate(b []byte) ([]byte, error) {
	if s.IsEmpty() {
		return b, sqlexpr.InvalidState("set clause has no items")
	}
	return appendJoined(append(b, "SET "...), ",", s.objects(), appendTemplate)
}

func (s *SetClause) AppendSolid(b []byte) []byte {
	b, _ = appendJoined(append(b, "SET "...), ",", s.objects(), appendSolid)
	return b
}

func (s *SetClause) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, s.objects())
}

func (s *SetClause) objects() []sqlexpr.Object {
	objs := make([]sqlexpr.Object, len(s.items))
	for i, it := range s.items {
		objs[i] = it
	}
	return objs
}
