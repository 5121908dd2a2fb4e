package dao

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/protosql/internal/field"
	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/store"
	"github.com/roach88/protosql/internal/testutil"
)

var statusEnum = &ir.EnumDescriptor{
	Name: "Status",
	Values: []ir.EnumValueDescriptor{
		{Name: "UNKNOWN", Number: 0},
		{Name: "ACTIVE", Number: 1},
		{Name: "DISABLED", Number: 2},
	},
}

func userDescriptor(t *testing.T) *ir.MessageDescriptor {
	t.Helper()
	md, err := ir.NewMessageDescriptor("UserProfile", "", []*ir.FieldDescriptor{
		{Name: "id", Number: 1, Type: ir.TypeInt64, PrimaryKey: true},
		{Name: "name", Number: 2, Type: ir.TypeString},
		{Name: "age", Number: 3, Type: ir.TypeInt32},
		{Name: "status", Number: 4, Type: ir.TypeEnum, EnumType: statusEnum, EnumName: "Status"},
		{Name: "scores", Number: 5, Type: ir.TypeMap,
			MapKey:   &ir.FieldDescriptor{Name: "key", Number: 1, Type: ir.TypeString},
			MapValue: &ir.FieldDescriptor{Name: "value", Number: 2, Type: ir.TypeInt32}},
		{Name: "tags", Number: 6, Type: ir.TypeString, Repeated: true},
	})
	require.NoError(t, err)
	return md
}

type fixture struct {
	dao   *MessageDao
	logs  *bytes.Buffer
	clock *testutil.DeterministicClock
}

// newFixture opens a fresh database with the user_profile table and a DAO
// logging JSON at debug level into a buffer.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	md := userDescriptor(t)
	h := field.NewHandler()
	_, err = s.EnsureTable(context.Background(), md, h)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	clock := testutil.NewDeterministicClock()
	d := New(s, md, Options{
		Logger:  logger,
		Clock:   clock,
		IDs:     testutil.NewSequentialIDs(""),
		Handler: h,
	})
	return &fixture{dao: d, logs: logs, clock: clock}
}

func user(md *ir.MessageDescriptor, id int64, name string, age int32) *ir.Record {
	return ir.NewRecord(md).
		MustSet("id", id).
		MustSet("name", name).
		MustSet("age", age)
}

// seed inserts users 1..n named u1..un with age 10*i and alternating status.
func (f *fixture) seed(t *testing.T, n int) {
	t.Helper()
	md := f.dao.Descriptor()
	for i := 1; i <= n; i++ {
		status, _ := statusEnum.ByNumber(int32(1 + i%2))
		u := user(md, int64(i), "u"+string(rune('0'+i)), int32(10*i)).MustSet("status", status)
		ok, err := f.dao.Insert(context.Background(), u)
		require.NoError(t, err)
		require.True(t, ok)
	}
}
