// Command glslx drives TransformationManager over GLSL source files from
// the command line (SPEC_FULL.md §4.I).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glslx",
		Short: "glslx applies programmable source-to-source transformations to GLSL shaders",
	}
	cmd.AddCommand(newRunCmd(), newListPhasesCmd())
	return cmd
}
