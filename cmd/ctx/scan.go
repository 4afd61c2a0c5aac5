package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <project_root>",
		Short: "Run an incremental indexing pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := runPass(args[0])
			if err != nil {
				return err
			}
			return emit(summary, func(interface{}) {
				fmt.Printf("%d changed, %d removed, %d unresolved edges\n",
					summary.FilesChanged, summary.FilesRemoved, summary.EdgesUnresolved)
			})
		},
	}
}
