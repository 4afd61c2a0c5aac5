package store

import (
	"time"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// InsertNote appends a knowledge note; notes are append-only from the
// engine's perspective, there is no update path.
func (s *Store) InsertNote(body string, relatedFileID *int64, ts time.Time) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO knowledge_notes (timestamp, body, related_file_id)
		VALUES (?, ?, ?)
	`, ts, body, relatedFileID)
	if err != nil {
		return 0, ctxerr.Wrap(ctxerr.KindIO, "insert note", err)
	}
	return res.LastInsertId()
}

// Notes returns every knowledge note, most recent first.
func (s *Store) Notes() ([]KnowledgeNote, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, body, related_file_id
		FROM knowledge_notes ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "list notes", err)
	}
	defer rows.Close()

	var out []KnowledgeNote
	for rows.Next() {
		var n KnowledgeNote
		if err := rows.Scan(&n.ID, &n.Timestamp, &n.Body, &n.RelatedFileID); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan note", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
