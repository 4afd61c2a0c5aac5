package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newLearnCmd() *cobra.Command {
	var relatedFile string
	cmd := &cobra.Command{
		Use:   "learn <project_root> <body>",
		Short: "Record a knowledge note, optionally tied to a tracked file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			note, err := e.Learn(args[1], relatedFile, time.Now())
			if err != nil {
				return err
			}
			return emit(note, func(interface{}) {
				fmt.Printf("recorded note %d at %s\n", note.ID, note.Timestamp.Format(time.RFC3339))
			})
		},
	}
	cmd.Flags().StringVarP(&relatedFile, "file", "f", "", "relative path of the tracked file this note concerns")
	return cmd
}
