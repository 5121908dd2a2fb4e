package dao

import (
	"context"

	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
)

// Iterator walks the rows selected by a where clause in batches, one
// SELECT ... LIMIT batch OFFSET n per batch.
//
//	it, err := d.Iterator(where, 100)
//	for it.Next(ctx) {
//		use(it.Record())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	d      *MessageDao
	where  *sqlclause.WhereClause
	batch  int
	offset int
	remain int // rows left in the caller's window; -1 means unbounded

	buf  []*ir.Record
	pos  int
	rec  *ir.Record
	done bool
	err  error
}

// Iterator returns an iterator over the rows selected by where, fetching
// batch rows at a time. A nil where selects every row.
//
// Without an ordering in where, rows are ordered by the primary key (or
// rowid) so that batches neither skip nor repeat rows. A pagination in
// where bounds the iteration to its window.
func (d *MessageDao) Iterator(where *sqlclause.WhereClause, batch int) (*Iterator, error) {
	if batch <= 0 {
		return nil, sqlexpr.InvalidArgument("batch must be > 0, got %d", batch)
	}
	w := copyWhere(where)
	if o := w.OrderByClause(); o == nil || o.IsEmpty() {
		key := "rowid"
		if pk := d.desc.PrimaryKey(); pk != nil {
			key = pk.Name
		}
		w.SetOrderBy(sqlclause.OrderBy().Asc(key))
	}
	it := &Iterator{d: d, where: w, batch: batch, remain: -1}
	if p := w.Pagination(); p != nil {
		it.offset, it.remain = p.Offset(), p.Limit()
	}
	return it, nil
}

// Next advances to the next record, fetching a batch when needed. It
// returns false at the end of the rows or on error.
func (it *Iterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if it.pos >= len(it.buf) {
		if it.done {
			it.rec = nil
			return false
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return false
		}
		if len(it.buf) == 0 {
			it.rec = nil
			return false
		}
	}
	it.rec = it.buf[it.pos]
	it.pos++
	return true
}

// Record returns the current record.
func (it *Iterator) Record() *ir.Record { return it.rec }

// Err returns the first error met by Next.
func (it *Iterator) Err() error { return it.err }

func (it *Iterator) fetch(ctx context.Context) error {
	limit := it.batch
	if it.remain >= 0 && it.remain < limit {
		limit = it.remain
	}
	if limit == 0 {
		it.buf, it.pos, it.done = nil, 0, true
		return nil
	}
	if err := it.where.LimitOffset(limit, it.offset); err != nil {
		return err
	}
	recs, err := it.d.selectWhere(ctx, it.where)
	if err != nil {
		return err
	}
	it.buf, it.pos = recs, 0
	it.offset += len(recs)
	if it.remain >= 0 {
		it.remain -= len(recs)
	}
	if len(recs) < limit || it.remain == 0 {
		it.done = true
	}
	return nil
}
