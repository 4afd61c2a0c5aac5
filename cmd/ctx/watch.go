package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	ctxengine "github.com/ctxagent/ctx"
	"github.com/ctxagent/ctx/internal/ctxerr"
	"github.com/ctxagent/ctx/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <project_root>",
		Short: "Watch the project and re-index on change until signaled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]

			e, err := ctxengine.Open(root)
			if err != nil {
				return err
			}
			defer e.Close()

			reindex := func(watch.ChangedPath) {
				lock, err := e.Lock()
				if err != nil {
					if kind, ok := ctxerr.KindOf(err); ok && kind == ctxerr.KindBusy {
						fmt.Fprintln(os.Stderr, "ctx: store busy, skipping this reindex cycle")
						return
					}
					fmt.Fprintf(os.Stderr, "ctx: %s\n", err.Error())
					return
				}
				defer lock.Release()

				summary, err := e.Run()
				if err != nil {
					fmt.Fprintf(os.Stderr, "ctx: %s\n", err.Error())
					return
				}
				fmt.Printf("reindexed: %d changed, %d removed\n", summary.FilesChanged, summary.FilesRemoved)
			}

			w, err := watch.New(root, reindex)
			if err != nil {
				return err
			}
			defer w.Close()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			runErr := make(chan error, 1)
			go func() { runErr <- w.Run() }()

			select {
			case <-sig:
				w.Close()
				return nil
			case err := <-runErr:
				return err
			}
		},
	}
}
