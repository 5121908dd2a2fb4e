package schema

import (
	"fmt"
	"strings"

	"github.com/roach88/protosql/internal/field"
	"github.com/roach88/protosql/internal/ir"
)

// CreateTable renders CREATE TABLE IF NOT EXISTS for md. Column types come
// from the field converters: INTEGER, REAL, TEXT or BLOB. The primary key
// field, if any, becomes INTEGER PRIMARY KEY.
func CreateTable(md *ir.MessageDescriptor, h *field.Handler) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE IF NOT EXISTS %s (\n", md.Table)
	for i, fd := range md.Fields {
		colType, err := h.ColumnType(fd)
		if err != nil {
			return "", fmt.Errorf("table %s: %w", md.Table, err)
		}
		fmt.Fprintf(&sb, "    %s %s", fd.Name, colType)
		if fd.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
		}
		if i < len(md.Fields)-1 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(")")
	return sb.String(), nil
}

// DDL renders CreateTable for every message of s, separated by ";\n\n".
func DDL(s *Schema, h *field.Handler) (string, error) {
	stmts := make([]string, 0, len(s.Messages))
	for _, md := range s.Messages {
		stmt, err := CreateTable(md, h)
		if err != nil {
			return "", err
		}
		stmts = append(stmts, stmt)
	}
	return strings.Join(stmts, ";\n\n") + ";\n", nil
}
