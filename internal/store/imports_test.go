package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveImports_UnambiguousSuffixMatch(t *testing.T) {
	s := newTestStore(t)

	srcID, err := s.UpsertFile("pkg/a.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	targetID, err := s.UpsertFile("pkg/sub/target.go", "go", 1, "h2", 1, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.ReplaceImportsForFile(srcID, []string{"sub/target.go"}))

	resolved, err := s.ResolveImports()
	require.NoError(t, err)
	require.Equal(t, 1, resolved)

	targets, err := s.ImportsOf(srcID)
	require.NoError(t, err)
	require.Equal(t, []int64{targetID}, targets)
}

func TestResolveImports_BasenameTieBrokenByLongestCommonPrefix(t *testing.T) {
	s := newTestStore(t)

	srcID, err := s.UpsertFile("pkg/a/importer.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	nearID, err := s.UpsertFile("pkg/a/util.go", "go", 1, "h2", 1, time.Now())
	require.NoError(t, err)
	_, err = s.UpsertFile("pkg/b/util.go", "go", 1, "h3", 1, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.ReplaceImportsForFile(srcID, []string{"util"}))

	resolved, err := s.ResolveImports()
	require.NoError(t, err)
	require.Equal(t, 1, resolved)

	targets, err := s.ImportsOf(srcID)
	require.NoError(t, err)
	require.Equal(t, []int64{nearID}, targets)
}

func TestResolveImports_NoMatchStaysUnresolved(t *testing.T) {
	s := newTestStore(t)

	srcID, err := s.UpsertFile("a.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.ReplaceImportsForFile(srcID, []string{"nowhere"}))

	resolved, err := s.ResolveImports()
	require.NoError(t, err)
	require.Equal(t, 0, resolved)

	targets, err := s.ImportsOf(srcID)
	require.NoError(t, err)
	require.Empty(t, targets)
}

func TestReverseAdjacency_BulkLoadsResolvedEdges(t *testing.T) {
	s := newTestStore(t)

	aID, err := s.UpsertFile("a.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	bID, err := s.UpsertFile("b.go", "go", 1, "h2", 1, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.ReplaceImportsForFile(aID, []string{"b.go"}))
	_, err = s.ResolveImports()
	require.NoError(t, err)

	adj, err := s.ReverseAdjacency()
	require.NoError(t, err)
	require.Equal(t, []int64{aID}, adj[bID])
}

func TestDemoteEdgesTargeting_ClearsTargetAndResolvedFlag(t *testing.T) {
	s := newTestStore(t)

	aID, err := s.UpsertFile("a.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	bID, err := s.UpsertFile("b.go", "go", 1, "h2", 1, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.ReplaceImportsForFile(aID, []string{"b.go"}))
	_, err = s.ResolveImports()
	require.NoError(t, err)

	require.NoError(t, s.DemoteEdgesTargeting(bID))

	targets, err := s.ImportsOf(aID)
	require.NoError(t, err)
	require.Empty(t, targets)
}
