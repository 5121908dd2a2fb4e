package sqlclause

import (
	"strings"

	"github.com/roach88/protosql/internal/sqlexpr"
)

// TableRef names a table.
type TableRef struct {
	name string
}

// NewTableRef returns a table reference. The name must not be blank.
func NewTableRef(name string) (*TableRef, error) {
	if strings.TrimSpace(name) == "" {
		return nil, sqlexpr.InvalidArgument("table name must not be blank")
	}
	return &TableRef{name: name}, nil
}

// Table is like NewTableRef but panics on a blank name.
func Table(name string) *TableRef {
	t, err := NewTableRef(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *TableRef) Name() string { return t.name }

func (t *TableRef) String() string { return t.name }

func (t *TableRef) AppendTemplate(b []byte) ([]byte, error) { return append(b, t.name...), nil }

func (t *TableRef) AppendSolid(b []byte) []byte { return append(b, t.name...) }

func (t *TableRef) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value { return vals }

// FromClause renders FROM <table>.
type FromClause struct {
	table *TableRef
}

// From returns FROM name. It panics on a blank name.
func From(name string) *FromClause {
	return &FromClause{table: Table(name)}
}

// FromTable returns FROM t.
func FromTable(t *TableRef) *FromClause {
	return &FromClause{table: t}
}

// TableRef returns the referenced table.
func (f *FromClause) TableRef() *TableRef { return f.table }

func (f *FromClause) AppendTemplate(b []byte) ([]byte, error) {
	return f.table.AppendTemplate(append(b, "FROM "...))
}

func (f *FromClause) AppendSolid(b []byte) []byte {
	return f.table.AppendSolid(append(b, "FROM "...))
}

func (f *FromClause) CollectValues(vals []sqlexpr.Value) []sqlexpr.Value { return vals }
