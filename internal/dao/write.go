package dao

import (
	"context"

	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
)

// Delete removes the rows matching cond and returns how many were removed.
// A nil cond removes every row.
func (d *MessageDao) Delete(ctx context.Context, cond sqlexpr.Expression) (int64, error) {
	stmt := sqlclause.DeleteFrom(d.desc.Table)
	if cond != nil {
		stmt.SetWhere(sqlclause.WhereCond(cond))
	}
	res, err := d.exec(ctx, d.store.DB(), "delete", stmt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Update applies set to the rows matching cond and returns how many rows
// changed. A nil cond updates every row. Values in set are column values;
// use Assign to convert field values.
func (d *MessageDao) Update(ctx context.Context, set *sqlclause.SetClause, cond sqlexpr.Expression) (int64, error) {
	if set == nil {
		return 0, sqlexpr.InvalidArgument("update %s needs a set clause", d.desc.Table)
	}
	stmt := sqlclause.Update(d.desc.Table, set)
	if cond != nil {
		stmt.SetWhere(sqlclause.WhereCond(cond))
	}
	res, err := d.exec(ctx, d.store.DB(), "update", stmt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
