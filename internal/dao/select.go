package dao

import (
	"context"
	"database/sql"

	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
)

// SelectOne returns the first row matching cond. A nil cond matches every
// row. It fails with an error satisfying IsNotFound when nothing matches.
func (d *MessageDao) SelectOne(ctx context.Context, cond sqlexpr.Expression) (*ir.Record, error) {
	return d.SelectOneWhere(ctx, sqlclause.WhereCond(cond))
}

// SelectOneWhere is like SelectOne with ordering and offset taken from
// where. Any limit in where is replaced by 1.
func (d *MessageDao) SelectOneWhere(ctx context.Context, where *sqlclause.WhereClause) (*ir.Record, error) {
	w := copyWhere(where)
	offset := 0
	if p := w.Pagination(); p != nil {
		offset = p.Offset()
	}
	if err := w.LimitOffset(1, offset); err != nil {
		return nil, err
	}
	recs, err := d.selectWhere(ctx, w)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, d.errorf(ErrCodeNotFound, "select", "no row matches %s", sqlexpr.Solid(w))
	}
	return recs[0], nil
}

// SelectAll returns every row of the table.
func (d *MessageDao) SelectAll(ctx context.Context) ([]*ir.Record, error) {
	return d.selectWhere(ctx, nil)
}

// SelectAllCond returns the rows matching cond.
func (d *MessageDao) SelectAllCond(ctx context.Context, cond sqlexpr.Expression) ([]*ir.Record, error) {
	return d.selectWhere(ctx, sqlclause.WhereCond(cond))
}

// SelectAllWhere returns the rows selected by where, with its ordering and
// pagination.
func (d *MessageDao) SelectAllWhere(ctx context.Context, where *sqlclause.WhereClause) ([]*ir.Record, error) {
	return d.selectWhere(ctx, where)
}

func (d *MessageDao) selectStatement(where *sqlclause.WhereClause) *sqlclause.SelectStatement {
	sel := sqlclause.Select().Columns(d.columns...)
	return sqlclause.SelectFrom(sel, d.desc.Table).SetWhere(where)
}

func (d *MessageDao) selectWhere(ctx context.Context, where *sqlclause.WhereClause) ([]*ir.Record, error) {
	recs := []*ir.Record{}
	err := d.query(ctx, "select", d.selectStatement(where), func(rows *sql.Rows) error {
		rec, err := d.scanRecord(rows)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// copyWhere returns a shallow copy of where so callers' clauses are never
// modified. The ordering and grouping are shared.
func copyWhere(where *sqlclause.WhereClause) *sqlclause.WhereClause {
	if where == nil {
		return sqlclause.Where()
	}
	return sqlclause.WhereCond(where.Cond()).
		SetOrderBy(where.OrderByClause()).
		SetGroupBy(where.GroupByClause()).
		SetPagination(where.Pagination())
}
