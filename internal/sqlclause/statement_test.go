package sqlclause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/protosql/internal/sqlexpr"
)

func TestSelectStatement(t *testing.T) {
	s := SelectFrom(Select().Columns("id", "name"), "users")
	assertRender(t, s, "SELECT id,name FROM users", "SELECT id,name FROM users")

	s.SetWhere(Where())
	assertRender(t, s, "SELECT id,name FROM users", "SELECT id,name FROM users")

	w := WhereCond(sqlexpr.FieldLike("name", "a%"))
	w.OrderBy().Desc("id")
	require.NoError(t, w.Limit(2))
	s.SetWhere(w)
	assertRender(t, s,
		"SELECT id,name FROM users WHERE name LIKE ? ORDER BY id DESC LIMIT 2 OFFSET 0",
		"SELECT id,name FROM users WHERE name LIKE 'a%' ORDER BY id DESC LIMIT 2 OFFSET 0")
	assert.Equal(t, []any{"a%"}, sqlexpr.Args(s))
}

func TestSelectStatement_Invalid(t *testing.T) {
	_, err := NewSelectStatement(nil, From("t"), nil)
	require.ErrorIs(t, err, sqlexpr.ErrInvalidArgument)
	_, err = NewSelectStatement(Select(), nil, nil)
	require.ErrorIs(t, err, sqlexpr.ErrInvalidArgument)

	s, err := NewSelectStatement(Select(), From("t"), nil)
	require.NoError(t, err)
	_, err = sqlexpr.Template(s)
	require.ErrorIs(t, err, sqlexpr.ErrInvalidState)
	assert.Equal(t, "SELECT  FROM t", sqlexpr.Solid(s))
}

func TestInsertStatement(t *testing.T) {
	s := InsertInto("users", "id", "name").Values(1, "ann").Values(2, "it's")
	assertRender(t, s,
		"INSERT INTO users (id,name) VALUES (?,?),(?,?)",
		"INSERT INTO users (id,name) VALUES (1,'ann'),(2,'it''s')")
	assert.Equal(t, []any{1, "ann", 2, "it's"}, sqlexpr.Args(s))
	assert.Equal(t, 2, s.RowCount())
	assert.False(t, s.IsIgnore())

	s.Ignore()
	assertRender(t, s,
		"INSERT OR IGNORE INTO users (id,name) VALUES (?,?),(?,?)",
		"INSERT OR IGNORE INTO users (id,name) VALUES (1,'ann'),(2,'it''s')")
}

func TestInsertStatement_Invalid(t *testing.T) {
	tests := []struct {
		name string
		stmt *InsertStatement
	}{
		{"no columns", InsertInto("t").Values(1)},
		{"no rows", InsertInto("t", "a")},
		{"short row", InsertInto("t", "a", "b").Values(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sqlexpr.Template(tt.stmt)
			require.ErrorIs(t, err, sqlexpr.ErrInvalidState)
		})
	}
}

func TestUpdateStatement(t *testing.T) {
	s := Update("users", Set().Set("name", "bob"))
	assertRender(t, s, "UPDATE users SET name=?", "UPDATE users SET name='bob'")

	s.SetWhere(WhereCond(sqlexpr.FieldEq("id", 7)))
	assertRender(t, s, "UPDATE users SET name=? WHERE id=?", "UPDATE users SET name='bob' WHERE id=7")
	assert.Equal(t, []any{"bob", 7}, sqlexpr.Args(s))

	_, err := sqlexpr.Template(Update("users", Set()))
	require.ErrorIs(t, err, sqlexpr.ErrInvalidState)
	_, err = sqlexpr.Template(Update("users", nil))
	require.ErrorIs(t, err, sqlexpr.ErrInvalidState)
}

func TestDeleteStatement(t *testing.T) {
	s := DeleteFrom("users")
	assertRender(t, s, "DELETE FROM users", "DELETE FROM users")

	s.SetWhere(WhereCond(sqlexpr.Or(sqlexpr.FieldEq("id", 1), sqlexpr.FieldEq("id", 2))))
	assertRender(t, s, "DELETE FROM users WHERE id=? OR id=?", "DELETE FROM users WHERE id=1 OR id=2")
	assert.Equal(t, []any{1, 2}, sqlexpr.Args(s))
}

func TestStatement_Sealed(t *testing.T) {
	var stmts []Statement = []Statement{
		SelectFrom(Select().Columns("a"), "t"),
		InsertInto("t", "a").Values(1),
		Update("t", Set().Set("a", 1)),
		DeleteFrom("t"),
	}
	for _, s := range stmts {
		_, err := sqlexpr.Template(s)
		require.NoError(t, err)
	}
}
