package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	ctxengine "github.com/ctxagent/ctx"
	"github.com/ctxagent/ctx/internal/audit"
)

var jsonOutput bool

// run builds the command tree and executes it, returning the process
// exit code per spec.md §6.
func run() int {
	root := &cobra.Command{
		Use:           "ctx",
		Short:         "Local, offline-capable code intelligence engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			logActivity(cmd.Name(), args)
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON output")

	root.AddCommand(
		newInitCmd(),
		newScanCmd(),
		newStatusCmd(),
		newMapCmd(),
		newQueryCmd(),
		newBlastRadiusCmd(),
		newDecisionsCmd(),
		newLearnCmd(),
		newWarningsCmd(),
		newWatchCmd(),
	)

	err := root.Execute()
	if err != nil {
		printError(err)
	}
	return exitCodeFor(err)
}

// logActivity appends one line to the target project's activity.jsonl.
// Every subcommand takes project_root as its first positional argument;
// failures here are swallowed since the journal is diagnostic, not load
// bearing for the command's own outcome.
func logActivity(tool string, args []string) {
	if len(args) == 0 {
		return
	}
	dataDir, err := ctxengine.ProjectDataDir(args[0])
	if err != nil {
		return
	}
	entry := audit.Entry{
		Timestamp:   time.Now(),
		Actor:       os.Getenv("USER"),
		Tool:        tool,
		Project:     args[0],
		ArgsSummary: strings.Join(args[1:], " "),
	}
	_ = audit.Append(filepath.Join(dataDir, "activity.jsonl"), entry)
}
