package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/protosql/internal/dao"
	"github.com/roach88/protosql/internal/field"
	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/schema"
	"github.com/roach88/protosql/internal/store"
)

// seedAccounts creates a database holding three accounts: ann (30, PRO),
// bob (12) and cy (45).
func seedAccounts(t *testing.T) string {
	t.Helper()
	s, err := schema.LoadDir(schemaDir)
	require.NoError(t, err)
	md, ok := s.Message("Account")
	require.True(t, ok)

	db := filepath.Join(t.TempDir(), "app.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	h := field.NewHandler()
	_, err = st.EnsureTable(ctx, md, h)
	require.NoError(t, err)

	d := dao.New(st, md, dao.Options{Handler: h})
	_, err = d.InsertMulti(ctx, []ir.Message{
		ir.NewRecord(md).MustSet("id", int64(1)).MustSet("name", "ann").MustSet("age", int32(30)).MustSet("plan", int32(1)),
		ir.NewRecord(md).MustSet("id", int64(2)).MustSet("name", "bob").MustSet("age", int32(12)),
		ir.NewRecord(md).MustSet("id", int64(3)).MustSet("name", "cy").MustSet("age", int32(45)),
	})
	require.NoError(t, err)
	return db
}

func queryArgs(db string, extra ...string) []string {
	args := []string{"query", "--db", db, "--schema", schemaDir, "--message", "Account"}
	return append(args, extra...)
}

func TestQuerySelect(t *testing.T) {
	db := seedAccounts(t)

	out, _, err := runCLI(t, queryArgs(db, "testdata/queries/adults.yaml")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `Account{"id":3,"name":"cy","age":45`), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `Account{"id":1,"name":"ann","age":30`), lines[1])
	assert.Contains(t, lines[1], `"plan":"PRO"`)
	assert.Equal(t, "(2 records)", lines[2])
}

func TestQuerySelectJSON(t *testing.T) {
	db := seedAccounts(t)

	out, _, err := runCLI(t, append([]string{"--format", "json"}, queryArgs(db, "testdata/queries/all.yaml")...)...)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 3)
	names := make([]any, len(resp.Data))
	for i, rec := range resp.Data {
		names[i] = rec["name"]
	}
	assert.ElementsMatch(t, []any{"ann", "bob", "cy"}, names)
}

func TestQueryCount(t *testing.T) {
	db := seedAccounts(t)

	out, _, err := runCLI(t, queryArgs(db, "--count", "testdata/queries/adults.yaml")...)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, _, err = runCLI(t, append([]string{"--format", "json"}, queryArgs(db, "--count", "testdata/queries/all.yaml")...)...)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"table":"account","count":3}}`, out)
}

func TestQueryVerboseLogsSQL(t *testing.T) {
	db := seedAccounts(t)

	_, errOut, err := runCLI(t, append([]string{"-v"}, queryArgs(db, "testdata/queries/adults.yaml")...)...)
	require.NoError(t, err)
	assert.Contains(t, errOut, "msg=sql")
	assert.Contains(t, errOut, "op=select")
	assert.Contains(t, errOut, "age>=18")
	assert.Contains(t, errOut, "rows=2")
}

func TestQueryCreatesMissingTable(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fresh.db")

	out, _, err := runCLI(t, queryArgs(db, "testdata/queries/all.yaml")...)
	require.NoError(t, err)
	assert.Equal(t, "(0 records)\n", out)

	out, _, err = runCLI(t, "tables", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "account\tAccount\t")
}

func TestQueryErrors(t *testing.T) {
	db := seedAccounts(t)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{
			name:     "unknown message",
			args:     []string{"query", "--db", db, "--schema", schemaDir, "--message", "Nope", "testdata/queries/all.yaml"},
			wantCode: ErrCodeUnknownMessage,
		},
		{
			name:     "table mismatch",
			args:     queryArgs(db, "testdata/queries/wrong_table.yaml"),
			wantCode: ErrCodeTableMismatch,
		},
		{
			name:     "not a select",
			args:     queryArgs(db, "testdata/queries/purge.yaml"),
			wantCode: ErrCodeWrongStatement,
		},
		{
			name:     "bad where",
			args:     queryArgs(db, "testdata/queries/bad.yaml"),
			wantCode: ErrCodeInvalidQuery,
		},
		{
			name:     "missing schema",
			args:     []string{"query", "--db", db, "--schema", "testdata/nope", "--message", "Account", "testdata/queries/all.yaml"},
			wantCode: ErrCodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestQueryRequiresFlags(t *testing.T) {
	_, _, err := runCLI(t, "query", "testdata/queries/all.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestQueryRejectsOperatorsSQLiteLacks(t *testing.T) {
	db := seedAccounts(t)

	for _, doc := range []string{"xor", "div_round"} {
		t.Run(doc, func(t *testing.T) {
			out, _, err := runCLI(t, queryArgs(db, "testdata/queries/"+doc+".yaml")...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+ErrCodeInvalidQuery+"]")
			assert.Contains(t, out, "not supported by SQLite")
		})
	}

	// render still writes both tokens.
	out, _, err := runCLI(t, "render", "testdata/queries/xor.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, " XOR ")
}
