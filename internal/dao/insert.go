package dao

import (
	"context"
	"database/sql"

	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/sqlclause"
)

// Insert inserts m and reports whether a row was written. Only the fields
// set on m become columns; an m with no set field is an error.
func (d *MessageDao) Insert(ctx context.Context, m ir.Message) (bool, error) {
	rows, _, err := d.insertOne(ctx, "insert", m, false)
	return rows > 0, err
}

// InsertIgnore is like Insert but skips a row that violates a uniqueness
// constraint, reporting false.
func (d *MessageDao) InsertIgnore(ctx context.Context, m ir.Message) (bool, error) {
	rows, _, err := d.insertOne(ctx, "insert", m, true)
	return rows > 0, err
}

// InsertReturnKey inserts m and returns the generated rowid, which is the
// primary key for tables with an integer primary key.
func (d *MessageDao) InsertReturnKey(ctx context.Context, m ir.Message) (int64, error) {
	rows, res, err := d.insertOne(ctx, "insert", m, false)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, d.errorf(ErrCodeNoKey, "insert", "no row inserted for %v", m)
	}
	return res.LastInsertId()
}

// InsertMulti inserts every message in one transaction and returns the
// rows written per message, index-aligned with ms. The columns are the
// union of the fields set on any message, in field-number order; a message
// lacking one of them stores the field's zero value.
func (d *MessageDao) InsertMulti(ctx context.Context, ms []ir.Message) ([]int64, error) {
	return d.insertMulti(ctx, ms, false)
}

// InsertIgnoreMulti is like InsertMulti with the semantics of InsertIgnore
// for each row.
func (d *MessageDao) InsertIgnoreMulti(ctx context.Context, ms []ir.Message) ([]int64, error) {
	return d.insertMulti(ctx, ms, true)
}

func (d *MessageDao) insertOne(ctx context.Context, op string, m ir.Message, ignore bool) (int64, sql.Result, error) {
	if err := d.checkMessage(op, m); err != nil {
		return 0, nil, err
	}
	fields := d.insertFields([]ir.Message{m})
	if len(fields) == 0 {
		return 0, nil, d.errorf(ErrCodeEmptyInsert, op, "empty message to insert")
	}
	stmt, err := d.insertStatement(fields, m, ignore)
	if err != nil {
		return 0, nil, err
	}
	res, err := d.exec(ctx, d.store.DB(), op, stmt)
	if err != nil {
		return 0, nil, err
	}
	rows, err := res.RowsAffected()
	return rows, res, err
}

func (d *MessageDao) insertMulti(ctx context.Context, ms []ir.Message, ignore bool) ([]int64, error) {
	if len(ms) == 0 {
		return []int64{}, nil
	}
	for _, m := range ms {
		if err := d.checkMessage("insert", m); err != nil {
			return nil, err
		}
	}
	fields := d.insertFields(ms)
	if len(fields) == 0 {
		return nil, d.errorf(ErrCodeEmptyInsert, "insert", "empty messages to insert")
	}

	counts := make([]int64, len(ms))
	err := d.store.InTx(ctx, func(tx *sql.Tx) error {
		for i, m := range ms {
			stmt, err := d.insertStatement(fields, m, ignore)
			if err != nil {
				return err
			}
			res, err := d.exec(ctx, tx, "insert", stmt)
			if err != nil {
				return err
			}
			if counts[i], err = res.RowsAffected(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (d *MessageDao) checkMessage(op string, m ir.Message) error {
	if m == nil {
		return d.errorf(ErrCodeWrongMessage, op, "nil message")
	}
	if got := m.Descriptor().Name; got != d.desc.Name {
		return d.errorf(ErrCodeWrongMessage, op, "message %s given to DAO of %s", got, d.desc.Name)
	}
	return nil
}

// insertFields returns the fields set on any of ms, in descriptor order.
func (d *MessageDao) insertFields(ms []ir.Message) []*ir.FieldDescriptor {
	var fields []*ir.FieldDescriptor
	for _, fd := range d.desc.Fields {
		for _, m := range ms {
			if m.Has(fd.Name) {
				fields = append(fields, fd)
				break
			}
		}
	}
	return fields
}

func (d *MessageDao) insertStatement(fields []*ir.FieldDescriptor, m ir.Message, ignore bool) (*sqlclause.InsertStatement, error) {
	names := make([]string, len(fields))
	values := make([]any, len(fields))
	for i, fd := range fields {
		v, err := d.handler.ToSQL(fd, m.Get(fd.Name))
		if err != nil {
			return nil, err
		}
		names[i], values[i] = fd.Name, v
	}
	stmt := sqlclause.InsertInto(d.desc.Table, names...).Values(values...)
	if ignore {
		stmt.Ignore()
	}
	return stmt, nil
}
