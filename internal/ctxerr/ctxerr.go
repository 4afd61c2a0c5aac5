// Package ctxerr defines the typed error taxonomy shared across the
// indexing pipeline: callers branch on Kind rather than parsing strings.
package ctxerr

import "fmt"

// Kind classifies a failure so callers can decide whether to recover,
// abort the current pass, or surface a specific exit code.
type Kind int

const (
	// KindIO is a filesystem read failure. Per-file, it is recovered by
	// skipping the file; on the Store it is fatal to the current pass.
	KindIO Kind = iota
	// KindParse is a per-file parser failure, recovered with a zero-symbol result.
	KindParse
	// KindSchema is a migration failure or a database from a future schema version.
	KindSchema
	// KindBusy is cross-process writer lock contention.
	KindBusy
	// KindResolve marks an unresolved import; not an error, just a state.
	KindResolve
	// KindGitAbsent means the project root is not a git repository.
	KindGitAbsent
	// KindUsage is an invalid argument shape from the CLI collaborator.
	KindUsage
	// KindNotFound is a project root that does not exist or isn't a directory.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "Io"
	case KindParse:
		return "Parse"
	case KindSchema:
		return "Schema"
	case KindBusy:
		return "Busy"
	case KindResolve:
		return "Resolve"
	case KindGitAbsent:
		return "GitAbsent"
	case KindUsage:
		return "Usage"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying cause with a Kind and, where relevant, the
// path that triggered it.
type Error struct {
	Kind Kind
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Msg, e.Path, e.Err)
		}
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an Error of the given kind wrapping err.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// WrapPath is Wrap with a path attached, for per-file errors.
func WrapPath(kind Kind, msg, path string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Path: path, Err: err}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error. Returns (0, false) otherwise — callers should treat the zero
// value as "unclassified", not KindIO.
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return 0, false
}
