package store

import (
	"github.com/ctxagent/ctx/internal/ctxerr"
)

// ReplaceSymbolsForFile deletes every symbol previously recorded for
// fileID and inserts syms in its place, inside one transaction. The
// symbols_fts triggers keep the full-text index in sync automatically.
func (s *Store) ReplaceSymbolsForFile(fileID int64, syms []Symbol) error {
	tx, err := s.db.Begin()
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "begin replace symbols", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM symbols WHERE file_id = ?`, fileID); err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "clear symbols", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO symbols (file_id, name, kind, signature, start_line, end_line)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "prepare insert symbol", err)
	}
	defer stmt.Close()

	for _, sym := range syms {
		if _, err := stmt.Exec(fileID, sym.Name, sym.Kind, sym.Signature, sym.StartLine, sym.EndLine); err != nil {
			return ctxerr.Wrap(ctxerr.KindIO, "insert symbol", err)
		}
	}
	return tx.Commit()
}

// SymbolsByFile returns every symbol recorded for fileID, ordered by
// start line.
func (s *Store) SymbolsByFile(fileID int64) ([]Symbol, error) {
	rows, err := s.db.Query(`
		SELECT id, file_id, name, kind, signature, start_line, end_line
		FROM symbols WHERE file_id = ? ORDER BY start_line
	`, fileID)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "list symbols", err)
	}
	defer rows.Close()

	var out []Symbol
	for rows.Next() {
		var sym Symbol
		if err := rows.Scan(&sym.ID, &sym.FileID, &sym.Name, &sym.Kind, &sym.Signature, &sym.StartLine, &sym.EndLine); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan symbol", err)
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

// CountSymbolsByKind returns a kind -> count map across the whole project.
func (s *Store) CountSymbolsByKind() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM symbols GROUP BY kind`)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "count symbols by kind", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan symbol kind count", err)
		}
		out[kind] = count
	}
	return out, rows.Err()
}
