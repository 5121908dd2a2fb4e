package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/protosql/internal/dao"
	"github.com/roach88/protosql/internal/field"
	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/querydoc"
	"github.com/roach88/protosql/internal/sqlclause"
	"github.com/roach88/protosql/internal/sqlexpr"
	"github.com/roach88/protosql/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
	Schema   string
	Message  string
	Count    bool
}

// CountResult is the output of query --count.
type CountResult struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <query.yaml>",
		Short: "Run a select document against a message table",
		Long: `Run the where clause of a select document through the message DAO and
print the matching records.

The table is created if it does not exist. The document's select list is
ignored: the DAO always reads whole records.

Example:
  protosql query --db ./app.db --schema ./schema --message UserProfile active.yaml
  protosql query --db ./app.db --schema ./schema --message UserProfile --count active.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema directory (required)")
	cmd.Flags().StringVar(&opts.Message, "message", "", "message type to query (required)")
	cmd.Flags().BoolVar(&opts.Count, "count", false, "print the number of matching rows instead of the rows")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runQuery(opts *QueryOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	s, err := loadSchema(formatter, opts.Schema)
	if err != nil {
		return err
	}
	md, ok := s.Message(opts.Message)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeUnknownMessage,
			fmt.Sprintf("schema has no message %q", opts.Message), nil)
	}

	doc, err := loadDocument(formatter, path)
	if err != nil {
		return err
	}
	if doc.Statement != querydoc.KindSelect {
		return formatter.Fail(ExitCommandError, ErrCodeWrongStatement,
			fmt.Sprintf("query runs select documents, got %s", doc.Statement), nil)
	}
	if doc.Table != md.Table {
		return formatter.Fail(ExitCommandError, ErrCodeTableMismatch,
			fmt.Sprintf("document queries table %s but message %s maps to %s", doc.Table, md.Name, md.Table), nil)
	}
	if len(doc.Select) > 0 {
		formatter.VerboseLog("Ignoring select list of %s", path)
	}
	where, err := doc.WhereClause()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidQuery, err.Error(), err)
	}
	if err := checkSQLiteOperators(where); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidQuery, err.Error(), err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	h := field.NewHandler()
	if _, err := st.EnsureTable(ctx, md, h); err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), err)
	}
	d := dao.New(st, md, dao.Options{Logger: logger, Handler: h})

	if opts.Count {
		return runCount(ctx, formatter, d, where)
	}
	return runSelect(ctx, formatter, logger, d, where)
}

func runCount(ctx context.Context, f *OutputFormatter, d *dao.MessageDao, where *sqlclause.WhereClause) error {
	var n int64
	var err error
	if where == nil || where.Cond() == nil {
		n, err = d.CountAll(ctx)
	} else {
		n, err = d.Count(ctx, where.Cond())
	}
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeDatabase, err.Error(), err)
	}
	if f.IsJSON() {
		return f.Success(CountResult{Table: d.Table(), Count: n})
	}
	fmt.Fprintf(f.Writer, "%d\n", n)
	return nil
}

func runSelect(ctx context.Context, f *OutputFormatter, logger *slog.Logger, d *dao.MessageDao, where *sqlclause.WhereClause) error {
	var recs []*ir.Record
	var err error
	if where == nil {
		recs, err = d.SelectAll(ctx)
	} else {
		recs, err = d.SelectAllWhere(ctx, where)
	}
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeDatabase, err.Error(), err)
	}
	logger.Info("query complete", "table", d.Table(), "rows", len(recs))

	if f.IsJSON() {
		return f.Success(recs)
	}
	for _, rec := range recs {
		fmt.Fprintln(f.Writer, rec.String())
	}
	fmt.Fprintf(f.Writer, "(%s)\n", plural(len(recs), "record"))
	return nil
}

// sqliteUnsupported lists operators whose tokens SQLite does not parse.
var sqliteUnsupported = []sqlexpr.Operator{sqlexpr.OpDivRound, sqlexpr.OpXor}

// checkSQLiteOperators rejects a where clause that uses an operator SQLite
// cannot run.
func checkSQLiteOperators(where *sqlclause.WhereClause) error {
	if where == nil {
		return nil
	}
	exprs := []sqlexpr.Expression{where.Cond()}
	if o := where.OrderByClause(); o != nil {
		for _, item := range o.Items() {
			exprs = append(exprs, item.Expression())
		}
	}
	if g := where.GroupByClause(); g != nil {
		for _, item := range g.Items() {
			exprs = append(exprs, item.Expression())
		}
	}

	var found error
	for _, e := range exprs {
		sqlexpr.Walk(e, func(n sqlexpr.Expression) bool {
			var op sqlexpr.Operator
			switch n := n.(type) {
			case *sqlexpr.Arithmetic:
				op = n.Operator()
			case *sqlexpr.Logical:
				op = n.Operator()
			default:
				return found == nil
			}
			if found == nil && slices.Contains(sqliteUnsupported, op) {
				found = fmt.Errorf("operator %s is not supported by SQLite", op)
			}
			return found == nil
		})
	}
	return found
}
