package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWarningsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warnings <project_root>",
		Short: "Show fragile/large/dead health categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			w, err := e.Warnings()
			if err != nil {
				return err
			}
			return emit(w, func(interface{}) {
				fmt.Printf("fragile (%d):\n", len(w.Fragile))
				for _, f := range w.Fragile {
					fmt.Printf("  %s  churn=%.2f\n", f.Path, f.ChurnScore)
				}
				fmt.Printf("large (%d):\n", len(w.Large))
				for _, f := range w.Large {
					fmt.Printf("  %s  lines=%d\n", f.Path, f.LineCount)
				}
				fmt.Printf("dead (%d):\n", len(w.Dead))
				for _, f := range w.Dead {
					fmt.Printf("  %s\n", f.Path)
				}
			})
		},
	}
}
