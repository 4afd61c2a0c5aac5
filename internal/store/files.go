package store

import (
	"database/sql"
	"time"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// UpsertFile inserts or updates a file row by path, bumping generation to
// mark it seen in the current scan pass. Returns the row id.
func (s *Store) UpsertFile(path, language string, lineCount int, hash string, generation int64, indexedAt time.Time) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO files (path, language, line_count, hash, generation, last_indexed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			language = excluded.language,
			line_count = excluded.line_count,
			hash = excluded.hash,
			generation = excluded.generation,
			last_indexed = excluded.last_indexed
	`, path, language, lineCount, hash, generation, indexedAt)
	if err != nil {
		return 0, ctxerr.WrapPath(ctxerr.KindIO, "upsert file", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		// Conflict path: LastInsertId doesn't reflect the updated row, look it up.
		return s.fileIDByPath(path)
	}
	return id, nil
}

func (s *Store) fileIDByPath(path string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM files WHERE path = ?`, path).Scan(&id)
	if err != nil {
		return 0, ctxerr.WrapPath(ctxerr.KindIO, "lookup file id", path, err)
	}
	return id, nil
}

// FileByPath returns the file row for path, or (nil, nil) if absent.
func (s *Store) FileByPath(path string) (*File, error) {
	row := s.db.QueryRow(`
		SELECT id, path, language, line_count, hash, commit_count, churn_score, generation, last_indexed
		FROM files WHERE path = ?
	`, path)
	return scanFile(row)
}

// FileByID returns the file row for id, or (nil, nil) if absent.
func (s *Store) FileByID(id int64) (*File, error) {
	row := s.db.QueryRow(`
		SELECT id, path, language, line_count, hash, commit_count, churn_score, generation, last_indexed
		FROM files WHERE id = ?
	`, id)
	return scanFile(row)
}

func scanFile(row *sql.Row) (*File, error) {
	var f File
	var lastIndexed sql.NullTime
	err := row.Scan(&f.ID, &f.Path, &f.Language, &f.LineCount, &f.Hash, &f.CommitCount, &f.ChurnScore, &f.Generation, &lastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "scan file", err)
	}
	if lastIndexed.Valid {
		f.LastIndexed = lastIndexed.Time
	}
	return &f, nil
}

// AllFiles returns every tracked file, ordered by path.
func (s *Store) AllFiles() ([]File, error) {
	rows, err := s.db.Query(`
		SELECT id, path, language, line_count, hash, commit_count, churn_score, generation, last_indexed
		FROM files ORDER BY path
	`)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "list files", err)
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		var f File
		var lastIndexed sql.NullTime
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.LineCount, &f.Hash, &f.CommitCount, &f.ChurnScore, &f.Generation, &lastIndexed); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan file row", err)
		}
		if lastIndexed.Valid {
			f.LastIndexed = lastIndexed.Time
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ReconcileStale removes every file whose generation is older than the
// current pass, together with its symbols and outgoing dependency edges
// (deleted explicitly by deleteFile; incoming edges are demoted to
// unresolved). Returns the removed paths so callers can report them.
func (s *Store) ReconcileStale(generation int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT id, path FROM files WHERE generation < ?`, generation)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "find stale files", err)
	}
	type staleFile struct {
		id   int64
		path string
	}
	var stale []staleFile
	for rows.Next() {
		var f staleFile
		if err := rows.Scan(&f.id, &f.path); err != nil {
			rows.Close()
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan stale file", err)
		}
		stale = append(stale, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var removed []string
	for _, f := range stale {
		if err := s.deleteFile(f.id); err != nil {
			return nil, err
		}
		removed = append(removed, f.path)
	}
	return removed, nil
}

func (s *Store) deleteFile(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "begin delete file", err)
	}
	defer tx.Rollback()

	// Incoming edges from other files must not be destroyed along with
	// the removed file: demote them to unresolved so a later pass can
	// re-bind them if a same-named file reappears, per the reconciliation
	// contract. This must run before the files row itself is deleted,
	// since target_file_id is a foreign key into files(id).
	if err := demoteEdgesTargeting(tx, id); err != nil {
		return err
	}

	stmts := []string{
		`DELETE FROM symbols WHERE file_id = ?`,
		`DELETE FROM dependencies WHERE source_file_id = ?`,
		`UPDATE knowledge_notes SET related_file_id = NULL WHERE related_file_id = ?`,
		`DELETE FROM files WHERE id = ?`,
	}
	args := [][]any{{id}, {id}, {id}, {id}}
	for i, stmt := range stmts {
		if _, err := tx.Exec(stmt, args[i]...); err != nil {
			return ctxerr.Wrap(ctxerr.KindIO, "delete file cascade", err)
		}
	}
	return tx.Commit()
}
