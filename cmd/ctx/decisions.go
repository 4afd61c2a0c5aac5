package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDecisionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decisions <project_root>",
		Short: "List decisions ordered by timestamp descending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			decisions, err := e.Decisions()
			if err != nil {
				return err
			}
			return emit(decisions, func(interface{}) {
				if len(decisions) == 0 {
					fmt.Println("no decisions")
					return
				}
				for _, d := range decisions {
					fmt.Printf("%s  %-10s %s\n", d.Timestamp.Format("2006-01-02"), d.Kind, d.Subject)
				}
			})
		},
	}
}
