// Command protosql compiles CUE message schemas into SQLite tables and runs
// YAML query documents against them.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/protosql/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
