// Package audit appends one JSON line per invocation to a project's
// activity.jsonl, per spec.md §6's persisted layout.
package audit

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// Entry is one audit record.
type Entry struct {
	Timestamp   time.Time `json:"ts"`
	Actor       string    `json:"actor"`
	Tool        string    `json:"tool"`
	Project     string    `json:"project"`
	ArgsSummary string    `json:"args_summary"`
}

// Append writes entry as one JSON line, opened in append mode so
// concurrent writers never interleave partial lines.
func Append(logPath string, entry Entry) error {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ctxerr.WrapPath(ctxerr.KindIO, "open activity log", logPath, err)
	}
	defer f.Close()

	line, err := json.Marshal(entry)
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "marshal activity entry", err)
	}
	line = append(line, '\n')
	if _, err := f.Write(line); err != nil {
		return ctxerr.WrapPath(ctxerr.KindIO, "append activity log", logPath, err)
	}
	return nil
}
