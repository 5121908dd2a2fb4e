package sqlclause

import "github.com/roach88/protosql/internal/sqlexpr"

// WhereClause is the tail of a query: an optional predicate, ordering,
// grouping and pagination, rendered in that order and joined by single
// spaces. Absent or empty parts leave no trace.
type WhereClause struct {
	cond       sqlexpr.Expression
	orderBy    *OrderByClause
	groupBy    *GroupByClause
	pagination *Pagination
}

// Where returns an empty clause.
func Where() *WhereClause {
	return &WhereClause{}
}

// WhereCond returns a clause with predicate cond.
func WhereCond(cond sqlexpr.Expression) *WhereClause {
	return &WhereClause{cond: cond}
}

// Cond returns the predicate, or nil.
func (w *WhereClause) Cond() sqlexpr.Expression { return w.cond }

// SetCond replaces the predicate. nil removes it.
func (w *WhereClause) SetCond(cond sqlexpr.Expression) *WhereClause {
	w.cond = cond
	return w
}

// OrderBy returns the ordering, creating an empty one on first use.
func (w *WhereClause) OrderBy() *OrderByClause {
	if w.orderBy == nil {
		w.orderBy = OrderBy()
	}
	return w.orderBy
}

// OrderByClause returns the ordering without creating it.
func (w *WhereClause) OrderByClause() *OrderByClause { return w.orderBy }

// SetOrderBy replaces the ordering. nil removes it.
func (w *WhereClause) SetOrderBy(o *OrderByClause) *WhereClause {
	w.orderBy = o
	return w
}

// GroupBy returns the grouping, creating an empty one on first use.
func (w *WhereClause) GroupBy() *GroupByClause {
	if w.groupBy == nil {
		w.groupBy = GroupBy()
	}
	return w.groupBy
}

// GroupByClause returns the grouping without creating it.
func (w *WhereClause) GroupByClause() *GroupByClause { return w.groupBy }

// SetGroupBy replaces the grouping. nil removes it.
func (w *WhereClause) SetGroupBy(g *GroupByClause) *WhereClause {
	w.groupBy = g
	return w
}

// Pagination returns the pagination, or nil.
func (w *WhereClause) Pagination() *Pagination { return w.pagination }

// SetPagination replaces the pagination. nil removes it.
func (w *WhereClause) SetPagination(p *Pagination) *WhereClause {
	w.pagination = p
	return w
}

// Limit sets LIMIT limit OFFSET 0.
func (w *WhereClause) Limit(limit int) error {
	return w.LimitOffset(limit, 0)
}

// LimitOffset sets LIMIT limit OFFSET offset.
func (w *WhereClause) LimitOffset(limit, offset int) error {
	p, err := NewPagination(limit).BuildByOffset(offset)
	if err != nil {
		return err
	}
	w.pagination = p
	return nil
}

// IsEmpty reports whether the clause would render nothing.
func (w *WhereClause) IsEmpty() bool {
	return w.cond == nil &&
		(w.orderBy == nil || w.orderBy.IsEmpty()) &&
		(w.groupBy == nil || w.groupBy.IsEmpty()) &&
		w.pagination == nil
}

func (w *WhereClause) AppendTemplate(b []byte) ([]byte, error) {
	return appendJoined(b, " ", w.parts(), appendTemplate)
}

func (w *WhereClause) AppendSolid(b []byte) []byte {
	b, _ = appendJoined(b, " ", w.parts(), appendSolid)
	return b
}

func (w *WhereClause) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, w.parts())
}

func (w *WhereClause) parts() []sqlexpr.Object {
	parts := make([]sqlexpr.Object, 0, 4)
	if w.cond != nil {
		parts = append(parts, predicate{w.cond})
	}
	if w.orderBy != nil {
		parts = append(parts, w.orderBy)
	}
	if w.groupBy != nil {
		parts = append(parts, w.groupBy)
	}
	if w.pagination != nil {
		parts = append(parts, w.pagination)
	}
	return parts
}

// predicate prefixes an expression with WHERE.
type predicate struct {
	cond sqlexpr.Expression
}

func (p predicate) AppendTemplate(b []byte) ([]byte, error) {
	return p.cond.AppendTemplate(append(b, "WHERE "...))
}

func (p predicate) AppendSolid(b []byte) []byte {
	return p.cond.AppendSolid(append(b, "WHERE "...))
}

func (p predicate) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return p.cond.CollectValues(vals)
}
