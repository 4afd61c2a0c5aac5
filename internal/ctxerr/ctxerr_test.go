package ctxerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_String_CoversEveryConstant(t *testing.T) {
	cases := map[Kind]string{
		KindIO:        "Io",
		KindParse:     "Parse",
		KindSchema:    "Schema",
		KindBusy:      "Busy",
		KindResolve:   "Resolve",
		KindGitAbsent: "GitAbsent",
		KindUsage:     "Usage",
		KindNotFound:  "NotFound",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
	require.Equal(t, "Unknown", Kind(99).String())
}

func TestNew_FormatsWithoutPathOrErr(t *testing.T) {
	err := New(KindUsage, "missing argument")
	require.Equal(t, "Usage: missing argument", err.Error())
	require.Nil(t, err.Unwrap())
}

func TestWrap_FormatsWithErrNoPath(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindIO, "write file", cause)
	require.Equal(t, "Io: write file: disk full", err.Error())
	require.Equal(t, cause, err.Unwrap())
}

func TestWrapPath_FormatsWithPathAndErr(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapPath(KindIO, "read file", "/tmp/a.go", cause)
	require.Equal(t, "Io: read file: /tmp/a.go: permission denied", err.Error())
}

func TestWrapPath_FormatsWithPathNoErr(t *testing.T) {
	err := WrapPath(KindNotFound, "project root is not a directory", "/tmp/x", nil)
	require.Equal(t, "NotFound: project root is not a directory: /tmp/x", err.Error())
}

func TestKindOf_ExtractsThroughWrappedChain(t *testing.T) {
	base := New(KindBusy, "lock held")
	wrapped := fmt.Errorf("acquiring writer lock: %w", base)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, KindBusy, kind)
}

func TestKindOf_DirectError(t *testing.T) {
	kind, ok := KindOf(WrapPath(KindGitAbsent, "not a repository", "/proj", nil))
	require.True(t, ok)
	require.Equal(t, KindGitAbsent, kind)
}

func TestKindOf_UnrelatedErrorReturnsFalse(t *testing.T) {
	kind, ok := KindOf(errors.New("plain error"))
	require.False(t, ok)
	require.Equal(t, Kind(0), kind)
}

func TestKindOf_NilErrorReturnsFalse(t *testing.T) {
	kind, ok := KindOf(nil)
	require.False(t, ok)
	require.Equal(t, Kind(0), kind)
}
