package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/protosql/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func noteDescriptor(t *testing.T, extra ...*ir.FieldDescriptor) *ir.MessageDescriptor {
	t.Helper()
	fields := []*ir.FieldDescriptor{
		{Name: "id", Number: 1, Type: ir.TypeInt64, PrimaryKey: true},
		{Name: "body", Number: 2, Type: ir.TypeString},
	}
	md, err := ir.NewMessageDescriptor("Note", "", append(fields, extra...))
	require.NoError(t, err)
	return md
}
