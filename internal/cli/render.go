package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/protosql/internal/querydoc"
)

// RenderResult is the JSON form of the render command.
type RenderResult struct {
	Name      string `json:"name,omitempty"`
	Statement string `json:"statement"`
	*querydoc.Rendered
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <query.yaml>",
		Short: "Render a YAML query document to SQL",
		Long: `Render a YAML query document in both SQL forms.

The template form has a ? for every bound value and is what gets executed.
The solid form inlines the values and is what gets logged.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runRender(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	doc, err := loadDocument(formatter, path)
	if err != nil {
		return err
	}
	stmt, err := doc.Build()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidQuery, err.Error(), err)
	}
	rendered, err := querydoc.Render(stmt)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidQuery, err.Error(), err)
	}

	if formatter.IsJSON() {
		return formatter.Success(RenderResult{Name: doc.Name, Statement: doc.Statement, Rendered: rendered})
	}
	fmt.Fprint(formatter.Writer, rendered.Text())
	return nil
}
