package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.InitSchema())
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInitSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InitSchema())

	version, err := s.currentVersion()
	require.NoError(t, err)
	require.Equal(t, schemaVersion, version)
}

func TestInitSchema_RejectsFutureVersion(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(`UPDATE meta SET schema_version = ? WHERE id = 1`, schemaVersion+1)
	require.NoError(t, err)

	err = s.InitSchema()
	require.Error(t, err)
}
