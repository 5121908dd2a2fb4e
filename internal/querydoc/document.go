package querydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
)

// Statement kinds.
const (
	KindSelect = "select"
	KindInsert = "insert"
	KindUpdate = "update"
	KindDelete = "delete"
)

// Document is one statement in YAML form.
type Document struct {
	// Name labels the document in output; optional.
	Name string `yaml:"name,omitempty"`

	// Statement is select, insert, update or delete.
	Statement string `yaml:"statement"`

	// Table is the target table.
	Table string `yaml:"table"`

	// Select lists the selected expressions; empty means "*".
	Select []yaml.Node `yaml:"select,omitempty"`

	// Set maps column names to expressions for update.
	Set yaml.Node `yaml:"set,omitempty"`

	// Columns and Rows describe an insert.
	Columns []string      `yaml:"columns,omitempty"`
	Rows    [][]yaml.Node `yaml:"rows,omitempty"`

	// Ignore turns an insert into INSERT OR IGNORE.
	Ignore bool `yaml:"ignore,omitempty"`

	// Where is the tail of select, update and delete statements.
	Where *WhereDoc `yaml:"where,omitempty"`
}

// WhereDoc is the YAML form of a where clause.
type WhereDoc struct {
	Cond    yaml.Node   `yaml:"cond,omitempty"`
	OrderBy []yaml.Node `yaml:"order_by,omitempty"`
	GroupBy []string    `yaml:"group_by,omitempty"`

	// Pagination. Limit (or DefaultLimit) enables it; PageNo, when given,
	// takes precedence over Offset.
	Limit        *int `yaml:"limit,omitempty"`
	Offset       *int `yaml:"offset,omitempty"`
	PageNo       *int `yaml:"page_no,omitempty"`
	DefaultLimit *int `yaml:"default_limit,omitempty"`
}

// Load reads and parses a query document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	return Parse(data)
}

// Parse parses a single YAML query document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty query document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid query document: %w", err)
	}
	return &doc, nil
}

func validate(d *Document) error {
	if d.Table == "" {
		return fmt.Errorf("table is required")
	}
	switch d.Statement {
	case KindSelect, KindDelete:
	case KindUpdate:
		if d.Set.Kind != yaml.MappingNode || len(d.Set.Content) == 0 {
			return fmt.Errorf("update needs a non-empty set mapping")
		}
	case KindInsert:
		if len(d.Columns) == 0 {
			return fmt.Errorf("insert needs columns")
		}
		if len(d.Rows) == 0 {
			return fmt.Errorf("insert needs rows")
		}
		for i, row := range d.Rows {
			if len(row) != len(d.Columns) {
				return fmt.Errorf("rows[%d]: has %d values, want %d", i, len(row), len(d.Columns))
			}
		}
		if d.Where != nil {
			return fmt.Errorf("insert takes no where clause")
		}
	case "":
		return fmt.Errorf("statement is required")
	default:
		return fmt.Errorf("unknown statement %q", d.Statement)
	}
	return nil
}

// Build converts the document into a statement.
func (d *Document) Build() (sqlclause.Statement, error) {
	table, err := sqlclause.NewTableRef(d.Table)
	if err != nil {
		return nil, err
	}
	switch d.Statement {
	case KindSelect:
		return d.buildSelect(table)
	case KindInsert:
		return d.buildInsert()
	case KindUpdate:
		return d.buildUpdate()
	case KindDelete:
		where, err := d.WhereClause()
		if err != nil {
			return nil, err
		}
		return sqlclause.DeleteFrom(table.Name()).SetWhere(where), nil
	default:
		return nil, fmt.Errorf("unknown statement %q", d.Statement)
	}
}

func (d *Document) buildSelect(table *sqlclause.TableRef) (sqlclause.Statement, error) {
	sel := sqlclause.Select()
	if len(d.Select) == 0 {
		sel.Columns("*")
	}
	for i := range d.Select {
		item, err := parseSelectItem(&d.Select[i])
		if err != nil {
			return nil, fmt.Errorf("select[%d]: %w", i, err)
		}
		sel.Add(item)
	}
	where, err := d.WhereClause()
	if err != nil {
		return nil, err
	}
	return sqlclause.NewSelectStatement(sel, sqlclause.FromTable(table), where)
}

func (d *Document) buildInsert() (sqlclause.Statement, error) {
	for i, c := range d.Columns {
		if _, err := sqlexpr.NewColumn(c); err != nil {
			return nil, fmt.Errorf("columns[%d]: %w", i, err)
		}
	}
	stmt := sqlclause.InsertInto(d.Table, d.Columns...)
	for i, row := range d.Rows {
		values := make([]any, len(row))
		for j := range row {
			expr, err := ParseExpr(&row[j])
			if err != nil {
				return nil, fmt.Errorf("rows[%d][%d]: %w", i, j, err)
			}
			values[j] = expr
		}
		stmt.Values(values...)
	}
	if d.Ignore {
		stmt.Ignore()
	}
	return stmt, nil
}

func (d *Document) buildUpdate() (sqlclause.Statement, error) {
	set := sqlclause.Set()
	for i := 0; i+1 < len(d.Set.Content); i += 2 {
		key, value := d.Set.Content[i], d.Set.Content[i+1]
		col, err := sqlexpr.NewColumn(key.Value)
		if err != nil {
			return nil, nodeError(key, "set: %w", err)
		}
		expr, err := ParseExpr(value)
		if err != nil {
			return nil, fmt.Errorf("set.%s: %w", key.Value, err)
		}
		item, err := sqlclause.NewSetItem(col, expr)
		if err != nil {
			return nil, err
		}
		set.Add(item)
	}
	where, err := d.WhereClause()
	if err != nil {
		return nil, err
	}
	return sqlclause.Update(d.Table, set).SetWhere(where), nil
}

// WhereClause builds the where clause, or returns nil when the document
// has none.
func (d *Document) WhereClause() (*sqlclause.WhereClause, error) {
	if d.Where == nil {
		return nil, nil
	}
	return d.Where.Build()
}

// Build converts the YAML form into a where clause.
func (w *WhereDoc) Build() (*sqlclause.WhereClause, error) {
	where := sqlclause.Where()
	if !w.Cond.IsZero() {
		cond, err := ParseExpr(&w.Cond)
		if err != nil {
			return nil, fmt.Errorf("where.cond: %w", err)
		}
		where.SetCond(cond)
	}
	for i := range w.OrderBy {
		item, err := parseOrderItem(&w.OrderBy[i])
		if err != nil {
			return nil, fmt.Errorf("where.order_by[%d]: %w", i, err)
		}
		where.OrderBy().Add(item)
	}
	for i, c := range w.GroupBy {
		col, err := sqlexpr.NewColumn(c)
		if err != nil {
			return nil, fmt.Errorf("where.group_by[%d]: %w", i, err)
		}
		where.GroupBy().ByExpr(col, sqlclause.DirectionNone)
	}
	p, err := w.pagination()
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	where.SetPagination(p)
	return where, nil
}

func (w *WhereDoc) pagination() (*sqlclause.Pagination, error) {
	if w.Limit == nil && w.DefaultLimit == nil {
		if w.Offset != nil || w.PageNo != nil {
			return nil, sqlexpr.InvalidArgument("offset and page_no need a limit")
		}
		return nil, nil
	}
	limit := -1
	if w.Limit != nil {
		limit = *w.Limit
	}
	b := sqlclause.NewPagination(limit)
	if w.DefaultLimit != nil {
		b.SetDefaultLimit(*w.DefaultLimit)
	}
	switch {
	case w.PageNo != nil:
		return b.BuildByPageNo(*w.PageNo)
	case w.Offset != nil:
		return b.BuildByOffset(*w.Offset)
	default:
		return b.Build()
	}
}
