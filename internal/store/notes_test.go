package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInsertNote_RoundTripsBody(t *testing.T) {
	s := newTestStore(t)

	fileID, err := s.UpsertFile("a.go", "go", 10, "h1", 1, time.Now())
	require.NoError(t, err)

	ts := time.Now()
	id, err := s.InsertNote("remember to check auth edge cases", &fileID, ts)
	require.NoError(t, err)
	require.NotZero(t, id)

	notes, err := s.Notes()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "remember to check auth edge cases", notes[0].Body)
	require.Equal(t, fileID, *notes[0].RelatedFileID)
}

func TestNotes_OrderedMostRecentFirst(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertNote("first", nil, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = s.InsertNote("second", nil, time.Now())
	require.NoError(t, err)

	notes, err := s.Notes()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "second", notes[0].Body)
}
