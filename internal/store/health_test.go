package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHealthWarnings_FragileRequiresChurnAndDependentCount(t *testing.T) {
	s := newTestStore(t)

	hotID, err := s.UpsertFile("hot.go", "go", 10, "h1", 1, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.BulkUpdateGitStats([]FileGitStat{{FileID: hotID, CommitCount: 20, ChurnScore: 6.0}}))

	for i := 0; i < 4; i++ {
		depID, err := s.UpsertFile("dep"+string(rune('a'+i))+".go", "go", 1, "h"+string(rune('a'+i)), 1, time.Now())
		require.NoError(t, err)
		require.NoError(t, s.ReplaceImportsForFile(depID, []string{"hot.go"}))
	}
	_, err = s.ResolveImports()
	require.NoError(t, err)

	hw, err := s.HealthWarnings()
	require.NoError(t, err)
	require.Len(t, hw.Fragile, 1)
	require.Equal(t, "hot.go", hw.Fragile[0].Path)
}

func TestHealthWarnings_LargeExceeds500Lines(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpsertFile("big.go", "go", 600, "h1", 1, time.Now())
	require.NoError(t, err)

	hw, err := s.HealthWarnings()
	require.NoError(t, err)
	require.Len(t, hw.Large, 1)
	require.Equal(t, "big.go", hw.Large[0].Path)
}

func TestHealthWarnings_DeadExcludesEntryPoints(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpsertFile("main.go", "go", 10, "h1", 1, time.Now())
	require.NoError(t, err)
	_, err = s.UpsertFile("orphan.go", "go", 10, "h2", 1, time.Now())
	require.NoError(t, err)

	hw, err := s.HealthWarnings()
	require.NoError(t, err)

	var paths []string
	for _, f := range hw.Dead {
		paths = append(paths, f.Path)
	}
	require.Contains(t, paths, "orphan.go")
	require.NotContains(t, paths, "main.go")
}

func TestIsEntryPoint(t *testing.T) {
	cases := map[string]bool{
		"main.go":      true,
		"index.ts":     true,
		"mod.rs":       true,
		"lib.rs":       true,
		"__init__.py":  true,
		"handler.go":   false,
	}
	for path, want := range cases {
		require.Equal(t, want, isEntryPoint(path), path)
	}
}

func TestAggregateStats_CountsPerLanguage(t *testing.T) {
	s := newTestStore(t)

	goID, err := s.UpsertFile("a.go", "go", 10, "h1", 1, time.Now())
	require.NoError(t, err)
	_, err = s.UpsertFile("b.py", "python", 5, "h2", 1, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.ReplaceSymbolsForFile(goID, []Symbol{
		{Name: "Foo", Kind: KindFunction, Signature: "func Foo()", StartLine: 1, EndLine: 2},
	}))

	stats, err := s.AggregateStats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.Files)
	require.Equal(t, 15, stats.Lines)
	require.Equal(t, 1, stats.Symbols)
	require.Equal(t, 1, stats.ByLanguage["go"].Symbols)
}
