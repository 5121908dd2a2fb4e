package dao

import (
	"context"
	"database/sql"

	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
)

// GroupCount is one group of a GroupCount result.
type GroupCount struct {
	// Key is the group's field value, converted like a record field.
	Key   any
	Count int64
}

// Count returns the number of rows matching cond. A nil cond counts every
// row.
func (d *MessageDao) Count(ctx context.Context, cond sqlexpr.Expression) (int64, error) {
	sel := sqlclause.Select().Select(sqlexpr.Count())
	stmt := sqlclause.SelectFrom(sel, d.desc.Table)
	if cond != nil {
		stmt.SetWhere(sqlclause.WhereCond(cond))
	}
	var n int64
	err := d.query(ctx, "count", stmt, func(rows *sql.Rows) error {
		return rows.Scan(&n)
	})
	return n, err
}

// CountAll returns the number of rows in the table.
func (d *MessageDao) CountAll(ctx context.Context) (int64, error) {
	return d.Count(ctx, nil)
}

// Sum returns the sum of an integer column over the rows matching cond,
// or 0 when no row matches.
func (d *MessageDao) Sum(ctx context.Context, name string, cond sqlexpr.Expression) (int64, error) {
	fd, err := d.field("sum", name)
	if err != nil {
		return 0, err
	}
	colType, err := d.handler.ColumnType(fd)
	if err != nil {
		return 0, err
	}
	if colType != "INTEGER" {
		return 0, sqlexpr.InvalidArgument("sum of %s: column type %s is not INTEGER", fd.FullName(), colType)
	}

	sel := sqlclause.Select().Select(sqlexpr.Sum(sqlexpr.Col(name)))
	stmt := sqlclause.SelectFrom(sel, d.desc.Table)
	if cond != nil {
		stmt.SetWhere(sqlclause.WhereCond(cond))
	}
	var sum sql.NullInt64
	err = d.query(ctx, "sum", stmt, func(rows *sql.Rows) error {
		return rows.Scan(&sum)
	})
	return sum.Int64, err
}

// GroupCount counts the rows matching cond per distinct value of the named
// field, in the order SQLite returns the groups.
func (d *MessageDao) GroupCount(ctx context.Context, name string, cond sqlexpr.Expression) ([]GroupCount, error) {
	fd, err := d.field("count", name)
	if err != nil {
		return nil, err
	}
	sel := sqlclause.Select().Select(sqlexpr.Col(name), sqlexpr.Count())
	where := sqlclause.WhereCond(cond)
	where.GroupBy().By(name)
	stmt := sqlclause.SelectFrom(sel, d.desc.Table).SetWhere(where)

	groups := []GroupCount{}
	err = d.query(ctx, "count", stmt, func(rows *sql.Rows) error {
		var raw any
		var n int64
		if err := rows.Scan(&raw, &n); err != nil {
			return err
		}
		key, err := d.handler.FromSQL(fd, raw)
		if err != nil {
			return err
		}
		groups = append(groups, GroupCount{Key: key, Count: n})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}
