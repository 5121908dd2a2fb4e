package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/protosql/internal/ir"
	"github.com/roach88/protosql/internal/schema"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledMessage is one message of the compile output.
type CompiledMessage struct {
	*ir.MessageDescriptor
	Fingerprint string `json:"fingerprint"`
}

// CompilationResult is the JSON form of a compiled schema.
type CompilationResult struct {
	Enums    []*ir.EnumDescriptor `json:"enums"`
	Messages []CompiledMessage    `json:"messages"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <schema-dir>",
		Short: "Compile CUE message schemas to descriptors",
		Long: `Compile the CUE package in a directory into message descriptors.

Every message gets its table name, its fields in number order and a
fingerprint that changes whenever the table layout changes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write descriptors as JSON to this file")

	return cmd
}

func runCompile(opts *CompileOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := loadSchema(formatter, dir)
	if err != nil {
		return err
	}

	result, err := buildCompilationResult(s)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), err)
	}

	if opts.Output != "" {
		if err := writeDescriptors(result, opts.Output); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), err)
		}
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ Compiled %s, %s\n\n", plural(len(result.Messages), "message"), plural(len(result.Enums), "enum"))
	if len(result.Enums) > 0 {
		fmt.Fprintln(w, "Enums:")
		for _, ed := range result.Enums {
			fmt.Fprintf(w, "  %s: %s\n", ed.Name, plural(len(ed.Values), "value"))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Messages:")
	for _, m := range result.Messages {
		pk := "rowid"
		if f := m.PrimaryKey(); f != nil {
			pk = f.Name
		}
		fmt.Fprintf(w, "  %s → %s: %s, key %s\n", m.Name, m.Table, plural(len(m.Fields), "field"), pk)
	}
	fmt.Fprintln(w)

	if opts.Output != "" {
		fmt.Fprintf(w, "Wrote descriptors to %s\n", opts.Output)
	}
	return nil
}

func buildCompilationResult(s *schema.Schema) (*CompilationResult, error) {
	result := &CompilationResult{Enums: s.Enums, Messages: make([]CompiledMessage, len(s.Messages))}
	for i, md := range s.Messages {
		fp, err := ir.Fingerprint(md)
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s: %w", md.Name, err)
		}
		result.Messages[i] = CompiledMessage{MessageDescriptor: md, Fingerprint: fp}
	}
	return result, nil
}

// writeDescriptors writes the compilation result as indented JSON.
func writeDescriptors(result *CompilationResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling descriptors: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
