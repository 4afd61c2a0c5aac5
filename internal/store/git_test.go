package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBulkUpdateGitStats_WritesBackToFiles(t *testing.T) {
	s := newTestStore(t)
	fileID, err := s.UpsertFile("a.go", "go", 10, "h1", 1, time.Now())
	require.NoError(t, err)

	require.NoError(t, s.BulkUpdateGitStats([]FileGitStat{{FileID: fileID, CommitCount: 5, ChurnScore: 2.5}}))

	f, err := s.FileByID(fileID)
	require.NoError(t, err)
	require.Equal(t, 5, f.CommitCount)
	require.Equal(t, 2.5, f.ChurnScore)
}

func TestInsertDecision_DuplicateReferenceIgnored(t *testing.T) {
	s := newTestStore(t)
	ref := "abc123"

	id1, err := s.InsertDecision(Decision{Source: SourceCommit, Reference: &ref, Timestamp: time.Now(), Kind: DecisionFeat, Subject: "feat: first"})
	require.NoError(t, err)
	require.NotZero(t, id1)

	id2, err := s.InsertDecision(Decision{Source: SourceCommit, Reference: &ref, Timestamp: time.Now(), Kind: DecisionFix, Subject: "fix: duplicate ref"})
	require.NoError(t, err)
	require.Zero(t, id2)

	decisions, err := s.Decisions()
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	require.Equal(t, "feat: first", decisions[0].Subject)
}

func TestDecisions_OrderedByTimestampDescending(t *testing.T) {
	s := newTestStore(t)
	older := "r1"
	newer := "r2"

	_, err := s.InsertDecision(Decision{Source: SourceCommit, Reference: &older, Timestamp: time.Now().Add(-time.Hour), Kind: DecisionFix, Subject: "fix: old"})
	require.NoError(t, err)
	_, err = s.InsertDecision(Decision{Source: SourceCommit, Reference: &newer, Timestamp: time.Now(), Kind: DecisionFeat, Subject: "feat: new"})
	require.NoError(t, err)

	decisions, err := s.Decisions()
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	require.Equal(t, "feat: new", decisions[0].Subject)
	require.Equal(t, "fix: old", decisions[1].Subject)
}
