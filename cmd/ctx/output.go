package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// envelope is the {error: {kind, message, path?}} shape from spec.md §7
// for machine-readable failures.
type envelope struct {
	Error *errorBody  `json:"error,omitempty"`
	Data  interface{} `json:"-"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// emit prints data as JSON (if --json) or via humanize, then returns nil
// so the caller's RunE reports success to cobra.
func emit(data interface{}, humanize func(interface{})) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	humanize(data)
	return nil
}

// printError writes the failure in the envelope shape appropriate to
// --json, per spec.md §7's user-visible behavior.
func printError(err error) {
	if jsonOutput {
		body := errorBody{Message: err.Error()}
		if kind, ok := ctxerr.KindOf(err); ok {
			body.Kind = kind.String()
		} else {
			body.Kind = "Unknown"
		}
		var e *ctxerr.Error
		if asCtxErr(err, &e) {
			body.Path = e.Path
		}
		enc := json.NewEncoder(os.Stderr)
		enc.Encode(envelope{Error: &body})
		return
	}
	if noColor() {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "\033[31mctx: %s\033[0m\n", err.Error())
}

func asCtxErr(err error, out **ctxerr.Error) bool {
	for err != nil {
		if e, ok := err.(*ctxerr.Error); ok {
			*out = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// exitCodeFor maps an error to the exit code table in spec.md §6.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	kind, ok := ctxerr.KindOf(err)
	if !ok {
		return 2
	}
	switch kind {
	case ctxerr.KindUsage:
		return 2
	case ctxerr.KindBusy:
		return 3
	case ctxerr.KindSchema:
		return 4
	case ctxerr.KindIO:
		return 5
	case ctxerr.KindNotFound:
		return 6
	default:
		return 5
	}
}
