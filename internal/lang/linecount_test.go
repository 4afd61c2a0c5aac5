package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineCountParser_YieldsOnlyLineCount(t *testing.T) {
	res, err := lineCountParser{}.Parse([]byte("one\ntwo\nthree"))
	require.NoError(t, err)
	require.Equal(t, 3, res.LineCount)
	require.Empty(t, res.Symbols)
	require.Empty(t, res.Imports)
}

func TestCountLines_TrailingNewlineDoesNotAddExtraLine(t *testing.T) {
	require.Equal(t, 2, countLines([]byte("a\nb\n")))
	require.Equal(t, 2, countLines([]byte("a\nb")))
	require.Equal(t, 0, countLines([]byte("")))
}
