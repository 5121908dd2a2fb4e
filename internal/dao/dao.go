package dao

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/roach88/protosql/internal/field"
	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
	"github.com/roach88/protosql/internal/store"
)

// Options configures a MessageDao. Zero values select defaults.
type Options struct {
	// Logger receives statement logs. Default: slog.Default().
	Logger *slog.Logger

	// Clock measures statement cost. Default: the system clock.
	Clock Clock

	// IDs names logged statements. Default: UUIDv7Generator.
	IDs IDGenerator

	// Handler converts field values. Default: a new field.Handler.
	Handler *field.Handler
}

// MessageDao runs statements against the table of one message type.
//
// Thread-safety: a MessageDao holds no mutable state of its own and is safe
// for concurrent use; the store serializes access to SQLite.
type MessageDao struct {
	store   *store.Store
	desc    *ir.MessageDescriptor
	handler *field.Handler
	log     *SQLLogger
	columns []string
}

// New binds a DAO to md's table in s. The table must already exist; see
// store.EnsureTable.
func New(s *store.Store, md *ir.MessageDescriptor, opts Options) *MessageDao {
	h := opts.Handler
	if h == nil {
		h = field.NewHandler()
	}
	return &MessageDao{
		store:   s,
		desc:    md,
		handler: h,
		log:     NewSQLLogger(md.Name, opts.Logger, opts.Clock, opts.IDs),
		columns: md.FieldNames(),
	}
}

// Descriptor returns the message type of the DAO.
func (d *MessageDao) Descriptor() *ir.MessageDescriptor { return d.desc }

// Table returns the table name.
func (d *MessageDao) Table() string { return d.desc.Table }

// SQLValue converts a field value to its column value, for building
// conditions on enum, map or repeated fields.
func (d *MessageDao) SQLValue(name string, value any) (any, error) {
	fd, err := d.field("value", name)
	if err != nil {
		return nil, err
	}
	return d.handler.ToSQL(fd, value)
}

// Assign adds name=value to set, converting value to its column value.
func (d *MessageDao) Assign(set *sqlclause.SetClause, name string, value any) error {
	v, err := d.SQLValue(name, value)
	if err != nil {
		return err
	}
	set.Set(name, v)
	return nil
}

func (d *MessageDao) field(op, name string) (*ir.FieldDescriptor, error) {
	fd, ok := d.desc.Field(name)
	if !ok {
		return nil, d.errorf(ErrCodeUnknownField, op, "message %s has no field %q", d.desc.Name, name)
	}
	return fd, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// exec runs stmt and returns the driver result.
func (d *MessageDao) exec(ctx context.Context, q querier, op string, stmt sqlclause.Statement) (sql.Result, error) {
	entry := d.log.start(op, stmt)
	res, rows, err := d.execTemplate(ctx, q, stmt)
	entry.done(ctx, rows, err)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, d.desc.Table, err)
	}
	return res, nil
}

func (d *MessageDao) execTemplate(ctx context.Context, q querier, stmt sqlclause.Statement) (sql.Result, int64, error) {
	query, err := sqlexpr.Template(stmt)
	if err != nil {
		return nil, 0, err
	}
	res, err := q.ExecContext(ctx, query, sqlexpr.Args(stmt)...)
	if err != nil {
		return nil, 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, 0, err
	}
	return res, rows, nil
}

// query runs stmt and calls scan once per result row.
func (d *MessageDao) query(ctx context.Context, op string, stmt sqlclause.Statement, scan func(*sql.Rows) error) error {
	entry := d.log.start(op, stmt)
	n, err := d.queryTemplate(ctx, stmt, scan)
	entry.done(ctx, n, err)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, d.desc.Table, err)
	}
	return nil
}

func (d *MessageDao) queryTemplate(ctx context.Context, stmt sqlclause.Statement, scan func(*sql.Rows) error) (int64, error) {
	query, err := sqlexpr.Template(stmt)
	if err != nil {
		return 0, err
	}
	rows, err := d.store.Query(ctx, query, sqlexpr.Args(stmt)...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int64
	for rows.Next() {
		if err := scan(rows); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}

// scanRecord reads a row selected with d.columns. NULL columns leave the
// field unset.
func (d *MessageDao) scanRecord(rows *sql.Rows) (*ir.Record, error) {
	raw := make([]any, len(d.desc.Fields))
	ptrs := make([]any, len(raw))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	rec := ir.NewRecord(d.desc)
	for i, fd := range d.desc.Fields {
		if raw[i] == nil {
			continue
		}
		v, err := d.handler.FromSQL(fd, raw[i])
		if err != nil {
			return nil, err
		}
		if err := rec.Set(fd.Name, v); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
