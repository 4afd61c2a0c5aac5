package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpsertFile_InsertThenUpdate(t *testing.T) {
	s := newTestStore(t)

	id, err := s.UpsertFile("a.go", "go", 10, "hash1", 1, time.Now())
	require.NoError(t, err)
	require.NotZero(t, id)

	updatedID, err := s.UpsertFile("a.go", "go", 20, "hash2", 2, time.Now())
	require.NoError(t, err)
	require.Equal(t, id, updatedID)

	f, err := s.FileByPath("a.go")
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, 20, f.LineCount)
	require.Equal(t, "hash2", f.Hash)
	require.Equal(t, int64(2), f.Generation)
}

func TestFileByPath_AbsentReturnsNil(t *testing.T) {
	s := newTestStore(t)

	f, err := s.FileByPath("missing.go")
	require.NoError(t, err)
	require.Nil(t, f)
}

func TestAllFiles_OrderedByPath(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertFile("z.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	_, err = s.UpsertFile("a.go", "go", 1, "h2", 1, time.Now())
	require.NoError(t, err)

	files, err := s.AllFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "a.go", files[0].Path)
	require.Equal(t, "z.go", files[1].Path)
}

func TestReconcileStale_RemovesAbsentFileAndCascades(t *testing.T) {
	s := newTestStore(t)

	oldID, err := s.UpsertFile("old.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	_, err = s.UpsertFile("kept.go", "go", 1, "h2", 2, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.ReplaceSymbolsForFile(oldID, []Symbol{{Name: "Foo", Kind: KindFunction, Signature: "func Foo()", StartLine: 1, EndLine: 2}}))

	removed, err := s.ReconcileStale(2)
	require.NoError(t, err)
	require.Equal(t, []string{"old.go"}, removed)

	f, err := s.FileByPath("old.go")
	require.NoError(t, err)
	require.Nil(t, f)

	syms, err := s.SymbolsByFile(oldID)
	require.NoError(t, err)
	require.Empty(t, syms)
}

func TestReconcileStale_DemotesIncomingEdgesInsteadOfDeletingThem(t *testing.T) {
	s := newTestStore(t)

	targetID, err := s.UpsertFile("b.go", "go", 1, "h1", 1, time.Now())
	require.NoError(t, err)
	sourceID, err := s.UpsertFile("a.go", "go", 1, "h2", 2, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.ReplaceImportsForFile(sourceID, []string{"b.go"}))
	resolved, err := s.ResolveImports()
	require.NoError(t, err)
	require.Equal(t, 1, resolved)

	deps, err := s.ImportsOf(sourceID)
	require.NoError(t, err)
	require.Equal(t, []int64{targetID}, deps)

	// b.go drops out of the next scan; a.go's hash is unchanged so it is
	// not re-parsed, but its edge must survive, demoted to unresolved,
	// rather than being deleted outright.
	removed, err := s.ReconcileStale(2)
	require.NoError(t, err)
	require.Equal(t, []string{"b.go"}, removed)

	row := s.db.QueryRow(`SELECT target_file_id, resolved, raw_import FROM dependencies WHERE source_file_id = ?`, sourceID)
	var target sql.NullInt64
	var resolvedFlag int
	var rawImport string
	require.NoError(t, row.Scan(&target, &resolvedFlag, &rawImport))
	require.False(t, target.Valid)
	require.Zero(t, resolvedFlag)
	require.Equal(t, "b.go", rawImport)
}
