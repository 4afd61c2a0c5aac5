package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <project_root> <term>",
		Short: "Rank symbol matches for term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			matches, err := e.SearchSymbols(args[1])
			if err != nil {
				return err
			}
			return emit(matches, func(interface{}) {
				if len(matches) == 0 {
					fmt.Println("no matches")
					return
				}
				for _, m := range matches {
					fmt.Printf("%s:%d  %-10s %s\n", m.Path, m.StartLine, m.Kind, m.Signature)
				}
			})
		},
	}
}
