package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/protosql/internal/field"
	"github.com/roach88/protosql/internal/schema"
	"github.com/roach88/protosql/internal/store"
)

// DDLOptions holds flags for the ddl command.
type DDLOptions struct {
	*RootOptions
	Database string // when set, create the tables there
}

// DDLResult is the JSON form of the ddl command.
type DDLResult struct {
	SQL     string   `json:"sql"`
	Created []string `json:"created,omitempty"`
}

// NewDDLCommand creates the ddl command.
func NewDDLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DDLOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ddl <schema-dir>",
		Short: "Print CREATE TABLE statements for a schema",
		Long: `Print the CREATE TABLE statement of every message in a schema.

With --db the tables are also created in that database and recorded in its
table registry. Existing tables are left as they are.

Example:
  protosql ddl ./schema
  protosql ddl --db ./app.db ./schema`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDDL(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "create the tables in this SQLite database")

	return cmd
}

func runDDL(opts *DDLOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := loadSchema(formatter, dir)
	if err != nil {
		return err
	}
	h := field.NewHandler()
	ddl, err := schema.DDL(s, h)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidType, err.Error(), err)
	}

	result := &DDLResult{SQL: ddl}
	if opts.Database != "" {
		logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
		created, err := ensureTables(cmd.Context(), logger, opts.Database, s, h)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), err)
		}
		result.Created = created
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}
	fmt.Fprint(formatter.Writer, ddl)
	for _, name := range result.Created {
		fmt.Fprintf(formatter.ErrWriter, "created table %s\n", name)
	}
	return nil
}

// ensureTables creates every table of s in the database at path and
// returns the names of those that did not exist yet.
func ensureTables(ctx context.Context, logger *slog.Logger, path string, s *schema.Schema, h *field.Handler) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	var created []string
	for _, md := range s.Messages {
		ok, err := st.EnsureTable(ctx, md, h)
		if err != nil {
			return created, err
		}
		if ok {
			created = append(created, md.Table)
		}
		logger.Debug("table ready", "message", md.Name, "table", md.Table, "created", ok)
	}
	return created, nil
}
