package sqlclause

import "github.com/roach88/protosql/internal/sqlexpr"

// Direction is a sort direction. DirectionNone writes nothing.
type Direction int

const (
	DirectionNone Direction = iota
	Asc
	Desc
)

// String returns ASC, DESC or "".
func (d Direction) String() string {
	switch d {
	case Asc:
		return "ASC"
	case Desc:
		return "DESC"
	default:
		return ""
	}
}

// OrderByItem is an expression with an optional direction. It is shared by
// ORDER BY and GROUP BY.
type OrderByItem struct {
	expr      sqlexpr.Expression
	direction Direction
}

// NewOrderByItem returns expr followed by dir.
func NewOrderByItem(expr sqlexpr.Expression, dir Direction) (*OrderByItem, error) {
	if expr == nil {
		return nil, sqlexpr.InvalidArgument("order by expression is nil")
	}
	return &OrderByItem{expr: expr, direction: dir}, nil
}

// Expression returns the sort key.
func (o *OrderByItem) Expression() sqlexpr.Expression { return o.expr }

// Direction returns the sort direction.
func (o *OrderByItem) Direction() Direction { return o.direction }

func (o *OrderByItem) AppendTemplate(b []byte) ([]byte, error) {
	b, err := o.expr.AppendTemplate(b)
	if err != nil {
		return b, err
	}
	return o.appendDirection(b), nil
}

func (o *OrderByItem) AppendSolid(b []byte) []byte {
	return o.appendDirection(o.expr.AppendSolid(b))
}

func (o *OrderByItem) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return o.expr.CollectValues(vals)
}

func (o *OrderByItem) appendDirection(b []byte) []byte {
	if o.direction == DirectionNone {
		return b
	}
	b = append(b, ' ')
	return append(b, o.direction.String()...)
}

func orderItem(expr sqlexpr.Expression, dir Direction) *OrderByItem {
	it, err := NewOrderByItem(expr, dir)
	if err != nil {
		panic(err)
	}
	return it
}

// orderList is the body shared by OrderByClause and GroupByClause.
type orderList struct {
	keyword string
	items   []*OrderByItem
}

func (l *orderList) objects() []sqlexpr.Object {
	objs := make([]sqlexpr.Object, len(l.items))
	for i, it := range l.items {
		objs[i] = it
	}
	return objs
}

func (l *orderList) appendWith(b []byte, render appendFunc) ([]byte, error) {
	if len(l.items) == 0 {
		return b, nil
	}
	b = append(b, l.keyword...)
	b = append(b, ' ')
	return appendJoined(b, ",", l.objects(), render)
}

func (l *orderList) appendSolid(b []byte) []byte {
	b, _ = l.appendWith(b, appendSolid)
	return b
}

// OrderByClause renders ORDER BY k1 [dir],k2 [dir]... and nothing when empty.
type OrderByClause struct {
	list orderList
}

// OrderBy returns an empty ORDER BY clause.
func OrderBy() *OrderByClause {
	return &OrderByClause{list: orderList{keyword: "ORDER BY"}}
}

// Asc appends column ASC.
func (o *OrderByClause) Asc(column string) *OrderByClause {
	return o.ByExpr(sqlexpr.Col(column), Asc)
}

// Desc appends column DESC.
func (o *OrderByClause) Desc(column string) *OrderByClause {
	return o.ByExpr(sqlexpr.Col(column), Desc)
}

// By appends columns with no explicit direction.
func (o *OrderByClause) By(columns ...string) *OrderByClause {
	for _, c := range columns {
		o.ByExpr(sqlexpr.Col(c), DirectionNone)
	}
	return o
}

// ByExpr appends an arbitrary sort key.
func (o *OrderByClause) ByExpr(expr sqlexpr.Expression, dir Direction) *OrderByClause {
	o.list.items = append(o.list.items, orderItem(expr, dir))
	return o
}

// Add appends prepared items.
func (o *OrderByClause) Add(items ...*OrderByItem) *OrderByClause {
	o.list.items = append(o.list.items, items...)
	return o
}

// Items returns a copy of the sort keys.
func (o *OrderByClause) Items() []*OrderByItem {
	return append([]*OrderByItem(nil), o.list.items...)
}

// IsEmpty reports whether the clause has no keys.
func (o *OrderByClause) IsEmpty() bool { return len(o.list.items) == 0 }

func (o *OrderByClause) AppendTemplate(b []byte) ([]byte, error) {
	return o.list.appendWith(b, appendTemplate)
}

func (o *OrderByClause) AppendSolid(b []byte) []byte { return o.list.appendSolid(b) }

func (o *OrderByClause) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, o.list.objects())
}

// GroupByClause renders GROUP BY k1 [dir],k2 [dir]... and nothing when empty.
// Grouping keys may carry a direction.
type GroupByClause struct {
	list orderList
}

// GroupBy returns an empty GROUP BY clause.
func GroupBy() *GroupByClause {
	return &GroupByClause{list: orderList{keyword: "GROUP BY"}}
}

// Asc appends column ASC.
func (g *GroupByClause) Asc(column string) *GroupByClause {
	return g.ByExpr(sqlexpr.Col(column), Asc)
}

// Desc appends column DESC.
func (g *GroupByClause) Desc(column string) *GroupByClause {
	return g.ByExpr(sqlexpr.Col(column), Desc)
}

// By appends grouping columns with no direction.
func (g *GroupByClause) By(columns ...string) *GroupByClause {
	for _, c := range columns {
		g.ByExpr(sqlexpr.Col(c), DirectionNone)
	}
	return g
}

// ByExpr appends an arbitrary grouping key.
func (g *GroupByClause) ByExpr(expr sqlexpr.Expression, dir Direction) *GroupByClause {
	g.list.items = append(g.list.items, orderItem(expr, dir))
	return g
}

// Add appends prepared items.
func (g *GroupByClause) Add(items ...*OrderByItem) *GroupByClause {
	g.list.items = append(g.list.items, items...)
	return g
}

// Items returns a copy of the grouping keys.
func (g *GroupByClause) Items() []*OrderByItem {
	return append([]*OrderByItem(nil), g.list.items...)
}

// IsEmpty reports whether the clause has no keys.
func (g *GroupByClause) IsEmpty() bool { return len(g.list.items) == 0 }

func (g *GroupByClause) AppendTemplate(b []byte) ([]byte, error) {
	return g.list.appendWith(b, appendTemplate)
}

func (g *GroupByClause) AppendSolid(b []byte) []byte { return g.list.appendSolid(b) }

func (g *GroupByClause) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, g.list.objects())
}
