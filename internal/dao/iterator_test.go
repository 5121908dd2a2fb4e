package dao

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
)

func collectIDs(t *testing.T, it *Iterator) []int64 {
	t.Helper()
	var ids []int64
	for it.Next(context.Background()) {
		ids = append(ids, it.Record().Get("id").(int64))
	}
	require.NoError(t, it.Err())
	return ids
}

func TestIterator_Batches(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 5)

	it, err := f.dao.Iterator(nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, collectIDs(t, it))
	assert.Nil(t, it.Record())

	// Three batches: 2 + 2 + 1 rows, ordered by the primary key.
	var selects []string
	for _, line := range strings.Split(f.logs.String(), "\n") {
		if strings.Contains(line, `"op":"select"`) {
			selects = append(selects, line)
		}
	}
	require.Len(t, selects, 3)
	assert.Contains(t, selects[2], "ORDER BY id ASC LIMIT 2 OFFSET 4")
}

func TestIterator_ExactMultipleStopsOnEmptyBatch(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 4)

	it, err := f.dao.Iterator(sqlclause.Where(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, collectIDs(t, it))
	assert.False(t, it.Next(context.Background()))
}

func TestIterator_WhereOrderingAndWindow(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 6)

	where := sqlclause.WhereCond(sqlexpr.FieldGt("age", 10))
	where.OrderBy().Desc("age")
	require.NoError(t, where.LimitOffset(3, 1))

	it, err := f.dao.Iterator(where, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4, 3}, collectIDs(t, it))
	assert.Equal(t, 3, where.Pagination().Limit(), "caller's clause is left untouched")
}

func TestIterator_Empty(t *testing.T) {
	f := newFixture(t)

	it, err := f.dao.Iterator(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, collectIDs(t, it))
}

func TestIterator_InvalidBatch(t *testing.T) {
	f := newFixture(t)
	_, err := f.dao.Iterator(nil, 0)
	assert.ErrorIs(t, err, sqlexpr.ErrInvalidArgument)
}

func TestIterator_Error(t *testing.T) {
	f := newFixture(t)
	f.seed(t, 1)

	it, err := f.dao.Iterator(sqlclause.WhereCond(sqlexpr.FieldEq("missing_column", 1)), 5)
	require.NoError(t, err)
	assert.False(t, it.Next(context.Background()))
	assert.Error(t, it.Err())
	assert.False(t, it.Next(context.Background()))
}
