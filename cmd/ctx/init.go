package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <project_root>",
		Short: "Create the store and run a full indexing pass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := runPass(args[0])
			if err != nil {
				return err
			}
			return emit(summary, func(interface{}) {
				fmt.Printf("indexed %d files (%d symbols, %d decisions)\n",
					summary.FilesTotal, summary.Symbols, summary.Decisions)
			})
		},
	}
}
