package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/protosql/internal/store"
)

// TablesOptions holds flags for the tables command.
type TablesOptions struct {
	*RootOptions
	Database string
}

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TablesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "tables",
		Short:         "List the message tables registered in a database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTables(opts *TablesOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), err)
	}
	defer st.Close()

	tables, err := st.Tables(ctx)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeDatabase, err.Error(), err)
	}

	if formatter.IsJSON() {
		return formatter.Success(tables)
	}
	if len(tables) == 0 {
		fmt.Fprintln(formatter.Writer, "No tables registered")
		return nil
	}
	for _, t := range tables {
		fmt.Fprintf(formatter.Writer, "%s\t%s\t%s\n", t.Name, t.Message, t.Fingerprint)
	}
	return nil
}
