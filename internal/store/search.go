package store

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

const searchResultCap = 50

// SearchMatch is one ranked result from SearchSymbols, either a symbol
// hit from the FTS index or, in the fallback path, a literal text hit.
type SearchMatch struct {
	Path      string  `json:"path"`
	Name      string  `json:"name"`
	Signature string  `json:"signature"`
	Kind      string  `json:"kind"`
	StartLine int     `json:"start_line"`
	Score     float64 `json:"score"`
}

// kindPriority ranks symbol kinds for tie-breaking equal FTS scores:
// function first, then class/struct, then everything else.
func kindPriority(kind string) int {
	switch kind {
	case KindFunction, KindMethod:
		return 0
	case KindClass, KindStruct:
		return 1
	default:
		return 2
	}
}

// SearchSymbols ranks symbol matches for term via the FTS index. If no
// symbol matches, it falls back to a literal substring scan of tracked
// file contents under projectRoot. Results are capped at 50.
func (s *Store) SearchSymbols(projectRoot, term string) ([]SearchMatch, error) {
	matches, err := s.searchFTS(term)
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches, nil
	}
	return s.searchLiteralFallback(projectRoot, term)
}

func (s *Store) searchFTS(term string) ([]SearchMatch, error) {
	rows, err := s.db.Query(`
		SELECT f.path, sy.name, sy.signature, sy.kind, sy.start_line, bm25(symbols_fts) AS rank
		FROM symbols_fts
		JOIN symbols sy ON sy.id = symbols_fts.rowid
		JOIN files f ON f.id = sy.file_id
		WHERE symbols_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, ftsQuery(term), searchResultCap*4)
	if err != nil {
		// MATCH syntax errors (term contains FTS operators) degrade to the
		// fallback rather than surfacing a query-syntax error to the user.
		return nil, nil
	}
	defer rows.Close()

	var out []SearchMatch
	for rows.Next() {
		var m SearchMatch
		if err := rows.Scan(&m.Path, &m.Name, &m.Signature, &m.Kind, &m.StartLine, &m.Score); err != nil {
			return nil, ctxerr.Wrap(ctxerr.KindIO, "scan fts match", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "search fts", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score // bm25: lower is better
		}
		if kindPriority(out[i].Kind) != kindPriority(out[j].Kind) {
			return kindPriority(out[i].Kind) < kindPriority(out[j].Kind)
		}
		return out[i].Path < out[j].Path
	})
	if len(out) > searchResultCap {
		out = out[:searchResultCap]
	}
	return out, nil
}

// ftsQuery wraps term as a quoted FTS5 prefix phrase ("term"*) matched
// against both the name and signature columns. Embedded double quotes are
// doubled, so characters FTS5 would otherwise treat as operators are
// matched literally.
func ftsQuery(term string) string {
	term = strings.TrimSpace(term)
	escaped := strings.ReplaceAll(term, `"`, `""`)
	return `"` + escaped + `"*`
}

func (s *Store) searchLiteralFallback(projectRoot, term string) ([]SearchMatch, error) {
	files, err := s.AllFiles()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)

	var out []SearchMatch
	for _, f := range files {
		if len(out) >= searchResultCap {
			break
		}
		lines, err := grepFile(filepath.Join(projectRoot, f.Path), needle)
		if err != nil {
			continue // unreadable file: skip, this is a best-effort fallback
		}
		for _, ln := range lines {
			if len(out) >= searchResultCap {
				break
			}
			out = append(out, SearchMatch{Path: f.Path, StartLine: ln})
		}
	}
	return out, nil
}

func grepFile(path, needleLower string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var matches []int
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if strings.Contains(strings.ToLower(sc.Text()), needleLower) {
			matches = append(matches, line)
		}
	}
	return matches, sc.Err()
}
