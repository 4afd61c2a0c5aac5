package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <project_root>",
		Short: "Show aggregate counts and per-language breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			st, err := e.Status()
			if err != nil {
				return err
			}
			return emit(st, func(interface{}) {
				fmt.Printf("files=%d lines=%d symbols=%d deps=%d decisions=%d notes=%d\n",
					st.Files, st.Lines, st.Symbols, st.Dependencies, st.Decisions, st.Notes)
				for lang, ls := range st.ByLanguage {
					fmt.Printf("  %-12s files=%d lines=%d symbols=%d\n", lang, ls.Files, ls.Lines, ls.Symbols)
				}
			})
		},
	}
}
