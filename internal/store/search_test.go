package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchSymbols_FTSFindsSymbolsByName(t *testing.T) {
	s := newTestStore(t)

	fileID, err := s.UpsertFile("a.go", "go", 10, "h1", 1, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.ReplaceSymbolsForFile(fileID, []Symbol{
		{Name: "Parse", Kind: KindFunction, Signature: "func Parse() error", StartLine: 1, EndLine: 2},
		{Name: "ParseTree", Kind: KindFunction, Signature: "func ParseTree() error", StartLine: 4, EndLine: 6},
	}))

	matches, err := s.SearchSymbols(t.TempDir(), "Parse")
	require.NoError(t, err)
	require.NotEmpty(t, matches)
}

func TestSearchSymbols_FallsBackToLiteralScan(t *testing.T) {
	s := newTestStore(t)
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("this mentions frobnicator here\n"), 0o644))
	_, err := s.UpsertFile("readme.md", "markdown", 1, "h1", 1, time.Now())
	require.NoError(t, err)

	matches, err := s.SearchSymbols(root, "frobnicator")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "readme.md", matches[0].Path)
	require.Equal(t, 1, matches[0].StartLine)
}

func TestSearchSymbols_NoMatchReturnsEmpty(t *testing.T) {
	s := newTestStore(t)
	matches, err := s.SearchSymbols(t.TempDir(), "nonexistentterm")
	require.NoError(t, err)
	require.Empty(t, matches)
}
