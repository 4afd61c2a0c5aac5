package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBlastRadiusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blast-radius <project_root> <file>",
		Short: "Compute a tracked file's blast radius and risk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			br, err := e.BlastRadius(args[1])
			if err != nil {
				return err
			}
			return emit(br, func(interface{}) {
				fmt.Printf("imports=%d direct_dependents=%d transitive_dependents=%d max_depth=%d risk=%s\n",
					len(br.DirectImports), len(br.DirectDependents), len(br.TransitiveDependents), br.MaxDepth, br.Risk)
			})
		},
	}
}
