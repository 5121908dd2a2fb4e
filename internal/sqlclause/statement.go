package sqlclause

import "github.com/roach88/protosql/internal/sqlexpr"

// Statement is a complete SQL statement. The set of implementations is
// closed: SelectStatement, InsertStatement, UpdateStatement and
// DeleteStatement.
type Statement interface {
	sqlexpr.Object
	statementNode()
}

func (*SelectStatement) statementNode() {}
func (*InsertStatement) statementNode() {}
func (*UpdateStatement) statementNode() {}
func (*DeleteStatement) statementNode() {}

// SelectStatement renders SELECT ... FROM t [WHERE ...].
type SelectStatement struct {
	sel   *SelectClause
	from  *FromClause
	where *WhereClause
}

// SelectFrom returns a query of sel over table.
func SelectFrom(sel *SelectClause, table string) *SelectStatement {
	return &SelectStatement{sel: sel, from: From(table)}
}

// NewSelectStatement assembles a query from prepared clauses. where may be
// nil.
func NewSelectStatement(sel *SelectClause, from *FromClause, where *WhereClause) (*SelectStatement, error) {
	if sel == nil {
		return nil, sqlexpr.InvalidArgument("select statement needs a select list")
	}
	if from == nil {
		return nil, sqlexpr.InvalidArgument("select statement needs a FROM clause")
	}
	return &SelectStatement{sel: sel, from: from, where: where}, nil
}

// SelectClause returns the select list.
func (s *SelectStatement) SelectClause() *SelectClause { return s.sel }

// FromClause returns the FROM clause.
func (s *SelectStatement) FromClause() *FromClause { return s.from }

// WhereClause returns the tail, or nil.
func (s *SelectStatement) WhereClause() *WhereClause { return s.where }

// SetWhere replaces the tail. nil removes it.
func (s *SelectStatement) SetWhere(w *WhereClause) *SelectStatement {
	s.where = w
	return s
}

func (s *SelectStatement) AppendTemplate(b []byte) ([]byte, error) {
	if s.sel == nil || s.from == nil {
		return b, sqlexpr.InvalidState("select statement needs a select list and a FROM clause")
	}
	return appendJoined(b, " ", s.parts(), appendTemplate)
}

func (s *SelectStatement) AppendSolid(b []byte) []byte {
	b, _ = appendJoined(b, " ", s.parts(), appendSolid)
	return b
}

func (s *SelectStatement) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, s.parts())
}

func (s *SelectStatement) parts() []sqlexpr.Object {
	return optionalParts(s.sel, s.from, s.where)
}

// InsertStatement renders INSERT [OR IGNORE] INTO t (c1,c2) VALUES (...),(...).
type InsertStatement struct {
	table   *TableRef
	columns []*sqlexpr.Column
	rows    [][]sqlexpr.Expression
	ignore  bool
}

// InsertInto starts an insert of columns into table. It panics on a blank
// table or column name.
func InsertInto(table string, columns ...string) *InsertStatement {
	cols := make([]*sqlexpr.Column, len(columns))
	for i, c := range columns {
		cols[i] = sqlexpr.Col(c)
	}
	return &InsertStatement{table: Table(table), columns: cols}
}

// Values appends one row. Values that are not expressions become literals.
func (s *InsertStatement) Values(values ...any) *InsertStatement {
	row := make([]sqlexpr.Expression, len(values))
	for i, v := range values {
		row[i] = toExpression(v)
	}
	s.rows = append(s.rows, row)
	return s
}

// Ignore switches to INSERT OR IGNORE, which skips rows that violate a
// uniqueness constraint.
func (s *InsertStatement) Ignore() *InsertStatement {
	s.ignore = true
	return s
}

// Table returns the target table.
func (s *InsertStatement) Table() *TableRef { return s.table }

// Columns returns a copy of the column list.
func (s *InsertStatement) Columns() []*sqlexpr.Column {
	return append([]*sqlexpr.Column(nil), s.columns...)
}

// RowCount returns the number of value rows.
func (s *InsertStatement) RowCount() int { return len(s.rows) }

// IsIgnore reports whether the statement is INSERT OR IGNORE.
func (s *InsertStatement) IsIgnore() bool { return s.ignore }

func (s *InsertStatement) AppendTemplate(b []byte) ([]byte, error) {
	if err := s.check(); err != nil {
		return b, err
	}
	return s.appendWith(b, appendTemplate)
}

func (s *InsertStatement) AppendSolid(b []byte) []byte {
	b, _ = s.appendWith(b, appendSolid)
	return b
}

func (s *InsertStatement) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	for _, row := range s.rows {
		for _, v := range row {
			vals = v.CollectValues(vals)
		}
	}
	return vals
}

func (s *InsertStatement) check() error {
	if len(s.columns) == 0 {
		return sqlexpr.InvalidState("insert into %s has no columns", s.table.Name())
	}
	if len(s.rows) == 0 {
		return sqlexpr.InvalidState("insert into %s has no rows", s.table.Name())
	}
	for i, row := range s.rows {
		if len(row) != len(s.columns) {
			return sqlexpr.InvalidState("insert into %s: row %d has %d values, want %d",
				s.table.Name(), i, len(row), len(s.columns))
		}
	}
	return nil
}

func (s *InsertStatement) appendWith(b []byte, render appendFunc) ([]byte, error) {
	if s.ignore {
		b = append(b, "INSERT OR IGNORE INTO "...)
	} else {
		b = append(b, "INSERT INTO "...)
	}
	b = append(b, s.table.Name()...)
	b = append(b, " ("...)
	cols := make([]sqlexpr.Object, len(s.columns))
	for i, c := range s.columns {
		cols[i] = c
	}
	b, err := appendJoined(b, ",", cols, render)
	if err != nil {
		return b, err
	}
	b = append(b, ") VALUES "...)
	for i, row := range s.rows {
		if i > 0 {
			b = append(b, ',')
		}
		vals := make([]sqlexpr.Object, len(row))
		for j, v := range row {
			vals[j] = v
		}
		b = append(b, '(')
		if b, err = appendJoined(b, ",", vals, render); err != nil {
			return b, err
		}
		b = append(b, ')')
	}
	return b, nil
}

// UpdateStatement renders UPDATE t SET ... [WHERE ...].
type UpdateStatement struct {
	table *TableRef
	set   *SetClause
	where *WhereClause
}

// Update starts an update of table with assignments set.
func Update(table string, set *SetClause) *UpdateStatement {
	return &UpdateStatement{table: Table(table), set: set}
}

// SetWhere replaces the tail. nil removes it and updates every row.
func (s *UpdateStatement) SetWhere(w *WhereClause) *UpdateStatement {
	s.where = w
	return s
}

// Table returns the target table.
func (s *UpdateStatement) Table() *TableRef { return s.table }

// SetClause returns the assignments.
func (s *UpdateStatement) SetClause() *SetClause { return s.set }

// WhereClause returns the tail, or nil.
func (s *UpdateStatement) WhereClause() *WhereClause { return s.where }

func (s *UpdateStatement) AppendTemplate(b []byte) ([]byte, error) {
	if s.set == nil {
		return b, sqlexpr.InvalidState("update of %s has no set clause", s.table.Name())
	}
	return appendJoined(b, " ", s.parts(), appendTemplate)
}

func (s *UpdateStatement) AppendSolid(b []byte) []byte {
	b, _ = appendJoined(b, " ", s.parts(), appendSolid)
	return b
}

func (s *UpdateStatement) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, s.parts())
}

func (s *UpdateStatement) parts() []sqlexpr.Object {
	return optionalParts(keyword{"UPDATE", s.table}, s.set, s.where)
}

// DeleteStatement renders DELETE FROM t [WHERE ...].
type DeleteStatement struct {
	table *TableRef
	where *WhereClause
}

// DeleteFrom starts a delete from table.
func DeleteFrom(table string) *DeleteStatement {
	return &DeleteStatement{table: Table(table)}
}

// SetWhere replaces the tail. nil removes it and deletes every row.
func (s *DeleteStatement) SetWhere(w *WhereClause) *DeleteStatement {
	s.where = w
	return s
}

// Table returns the target table.
func (s *DeleteStatement) Table() *TableRef { return s.table }

// WhereClause returns the tail, or nil.
func (s *DeleteStatement) WhereClause() *WhereClause { return s.where }

func (s *DeleteStatement) AppendTemplate(b []byte) ([]byte, error) {
	return appendJoined(b, " ", s.parts(), appendTemplate)
}

func (s *DeleteStatement) AppendSolid(b []byte) []byte {
	b, _ = appendJoined(b, " ", s.parts(), appendSolid)
	return b
}

func (s *DeleteStatement) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value {
	return collectAll(vals, s.parts())
}

func (s *DeleteStatement) parts() []sqlexpr.Object {
	return optionalParts(keyword{"DELETE FROM", s.table}, s.where)
}

// keyword renders a fixed prefix followed by a table name.
type keyword struct {
	word  string
	table *TableRef
}

func (k keyword) AppendTemplate(b []byte) ([]byte, error) { return k.AppendSolid(b), nil }

func (k keyword) AppendSolid(b []byte) []byte {
	b = append(b, k.word...)
	b = append(b, ' ')
	return append(b, k.table.Name()...)
}

func (k keyword) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value { return vals }

// optionalParts drops nil clause pointers so they render as absent.
func optionalParts(parts ...sqlexpr.Object) []sqlexpr.Object {
	out := parts[:0]
	for _, p := range parts {
		if isNil(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isNil(o sqlexpr.Object) bool {
	switch v := o.(type) {
	case nil:
		return true
	case *SelectClause:
		return v == nil
	case *FromClause:
		return v == nil
	case *WhereClause:
		return v == nil
	case *SetClause:
		return v == nil
	default:
		return false
	}
}
