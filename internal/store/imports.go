package store

import (
	"database/sql"
	"strings"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// ReplaceImportsForFile deletes every dependency edge sourced from
// fileID and inserts rawImports in its place, unresolved, inside one
// transaction. Resolution is a separate pass (see ResolveImports).
func (s *Store) ReplaceImportsForFile(fileID int64, rawImports []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "begin replace imports", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM dependencies WHERE source_file_id = ?`, fileID); err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "clear imports", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO dependencies (source_file_id, target_file_id, raw_import, resolved)
		VALUES (?, NULL, ?, 0)
		ON CONFLICT(source_file_id, raw_import) DO NOTHING
	`)
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "prepare insert import", err)
	}
	defer stmt.Close()

	seen := map[string]bool{}
	for _, raw := range rawImports {
		if seen[raw] {
			continue
		}
		seen[raw] = true
		if _, err := stmt.Exec(fileID, raw); err != nil {
			return ctxerr.Wrap(ctxerr.KindIO, "insert import", err)
		}
	}
	return tx.Commit()
}

// execer is satisfied by both *sql.DB and *sql.Tx, letting the demote
// query run standalone or inside a caller's transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// DemoteEdgesTargeting marks every edge pointing at fileID as unresolved,
// used when a file is removed during reconciliation so its former
// dependents can be re-resolved on a later pass rather than left dangling.
func (s *Store) DemoteEdgesTargeting(fileID int64) error {
	return demoteEdgesTargeting(s.db, fileID)
}

func demoteEdgesTargeting(ex execer, fileID int64) error {
	_, err := ex.Exec(`UPDATE dependencies SET target_file_id = NULL, resolved = 0 WHERE target_file_id = ?`, fileID)
	if err != nil {
		return ctxerr.Wrap(ctxerr.KindIO, "demote edges", err)
	}
	return nil
}

// importCandidate is the minimal projection of a file row needed for
// resolution matching.
type importCandidate struct {
	id   int64
	path string
}

// ResolveImports attempts to bind every unresolved dependency edge to a
// file row, per spec: suffix match on the raw import's path-like form,
// then basename match with longest-common-prefix tie-break. Returns the
// number of edges newly resolved.
func (s *Store) ResolveImports() (int, error) {
	files, err := s.AllFiles()
	if err != nil {
		return 0, err
	}
	candidates := make([]importCandidate, len(files))
	for i, f := range files {
		candidates[i] = importCandidate{id: f.ID, path: f.Path}
	}
	pathByID := make(map[int64]string, len(candidates))
	for _, c := range candidates {
		pathByID[c.id] = c.path
	}

	rows, err := s.db.Query(`
		SELECT id, source_file_id, raw_import
		FROM dependencies WHERE resolved = 0
	`)
	if err != nil {
		return 0, ctxerr.Wrap(ctxerr.KindIO, "list unresolved edges", err)
	}
	type pending struct {
		id       int64
		sourceID int64
		raw      string
	}
	var edges []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.sourceID, &p.raw); err != nil {
			rows.Close()
			return 0, ctxerr.Wrap(ctxerr.KindIO, "scan unresolved edge", err)
		}
		edges = append(edges, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, ctxerr.Wrap(ctxerr.KindIO, "begin resolve", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE dependencies SET target_file_id = ?, resolved = 1 WHERE id = ?`)
	if err != nil {
		return 0, ctxerr.Wrap(ctxerr.KindIO, "prepare resolve update", err)
	}
	defer stmt.Close()

	resolved := 0
	for _, e := range edges {
		sourcePath := pathByID[e.sourceID]
		target, ok := resolveImport(e.raw, sourcePath, candidates)
		if !ok {
			continue
		}
		if _, err := stmt.Exec(target, e.id); err != nil {
			return 0, ctxerr.Wrap(ctxerr.KindIO, "apply resolved edge", err)
		}
		resolved++
	}
	return resolved, tx.Commit()
}

// resolveImport implements spec.md §4.4's two-step match.
func resolveImport(raw, sourcePath string, candidates []importCandidate) (int64, bool) {
	norm := strings.ReplaceAll(raw, "\\", "/")

	for _, c := range candidates {
		if strings.HasSuffix(c.path, norm) {
			return c.id, true
		}
	}

	target := lastSegment(norm)
	var matches []importCandidate
	for _, c := range candidates {
		if lastSegment(c.path) == target {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return 0, false
	case 1:
		return matches[0].id, true
	default:
		best := matches[0]
		bestPrefix := commonPrefixLen(best.path, sourcePath)
		for _, m := range matches[1:] {
			p := commonPrefixLen(m.path, sourcePath)
			if p > bestPrefix || (p == bestPrefix && m.path < best.path) {
				best, bestPrefix = m, p
			}
		}
		return best.id, true
	}
}

// lastSegment returns the final path segment of p with its extension
// stripped, for basename comparison.
func lastSegment(p string) string {
	p = strings.TrimSuffix(p, extOf(p))
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	return p
}

func extOf(p string) string {
	base := p
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i:]
	}
	return ""
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// DependentsOf returns the resolved source file ids importing target,
// i.e. the direct reverse edges.
func (s *Store) DependentsOf(targetFileID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT source_file_id FROM dependencies
		WHERE target_file_id = ? AND resolved = 1
	`, targetFileID)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "dependents of", err)
	}
	defer rows.Close()
	return scanInt64Column(rows)
}

// ImportsOf returns the resolved target file ids imported by source.
func (s *Store) ImportsOf(sourceFileID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT target_file_id FROM dependencies
		WHERE source_file_id = ? AND resolved = 1
	`, sourceFileID)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "imports of", err)
	}
	defer rows.Close()
	return scanInt64Column(rows)
}

// ReverseAdjacency bulk-loads the whole resolved edge set as target ->
// [sources], for blast-radius BFS without per-node queries.
func (s *Store) ReverseAdjacency() (map[int64][]int64, error) {
	rows, err := s.db.Query(`
		SELECT target_file_id, source_file_id FROM dependencies WHERE resolved = 1
	`)
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "load reverse adjacency", err)
	}
	defer rows.Close()

	out := map[int64][]int64{}
	for rows.Next() {
		var target, source int64
		if err := rows.Scan(&target, &source); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan adjacency row", err)
		}
		out[target] = append(out[target], source)
	}
	return out, rows.Err()
}

func scanInt64Column(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]int64, error) {
	var out []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan int64 column", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
