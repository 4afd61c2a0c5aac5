package store

import (
	"time"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// FileGitStat is one file's commit_count/churn_score pair as computed by
// the git analyzer, keyed by file id for a bulk write-back.
type FileGitStat struct {
	FileID      int64
	CommitCount int
	ChurnScore  float64
}

// BulkUpdateGitStats writes commit_count and churn_score back onto the
// files table in a single transaction.
func (s *Store) BulkUpdateGitStats(stats []FileGitStat) error {
	tx, err := s.db.Begin()
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "begin git stats", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE files SET commit_count = ?, churn_score = ? WHERE id = ?`)
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "prepare git stats update", err)
	}
	defer stmt.Close()

	for _, st := range stats {
		if _, err := stmt.Exec(st.CommitCount, st.ChurnScore, st.FileID); err != nil {
			return ctxerr.Wrap(ctxerr.KindIO, "apply git stats", err)
		}
	}
	return tx.Commit()
}

// InsertDecision records a decision, ignoring a duplicate (source,
// reference) pair per spec's "duplicate commit references are ignored".
// An ignored duplicate returns id 0.
func (s *Store) InsertDecision(d Decision) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO decisions (source, reference, timestamp, kind, subject, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(source, reference) DO NOTHING
	`, d.Source, d.Reference, d.Timestamp, d.Kind, d.Subject, d.Body)
	if err != nil {
		return 0, ctxerr.Wrap(ctxerr.KindIO, "insert decision", err)
	}
	// On DO NOTHING, LastInsertId still reports the connection's previous
	// insert, so check whether a row was actually written.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, ctxerr.Wrap(ctxerr.KindIO, "insert decision id", err)
	}
	return id, nil
}

// Decisions returns every decision ordered by timestamp descending.
func (s *Store) Decisions() ([]Decision, error) {
	rows, err := s.db.Query(`
		SELECT id, source, reference, timestamp, kind, subject, body
		FROM decisions ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "list decisions", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var d Decision
		var ts time.Time
		if err := rows.Scan(&d.ID, &d.Source, &d.Reference, &ts, &d.Kind, &d.Subject, &d.Body); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan decision", err)
		}
		d.Timestamp = ts
		out = append(out, d)
	}
	return out, rows.Err()
}
