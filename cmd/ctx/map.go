package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map <project_root>",
		Short: "Show directory-aggregated file/line/symbol counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			entries, err := e.Map()
			if err != nil {
				return err
			}
			return emit(entries, func(interface{}) {
				for _, ent := range entries {
					fmt.Printf("%-40s files=%d lines=%d symbols=%d\n", ent.Dir, ent.Files, ent.Lines, ent.Symbols)
				}
			})
		},
	}
}
