package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxhq/glsltransform/transform/phases"
)

func newListPhasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-phases",
		Short: "List the built-in transformation phases glslx can run",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range phases.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
