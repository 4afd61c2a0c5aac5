package store

import (
	"path/filepath"
	"strings"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// Stats is the aggregate counts returned by the status command.
type Stats struct {
	Files          int                      `json:"files"`
	Lines          int                      `json:"lines"`
	Symbols        int                      `json:"symbols"`
	Dependencies   int                      `json:"dependencies"`
	Decisions      int                      `json:"decisions"`
	Notes          int                      `json:"notes"`
	UnresolvedDeps int                      `json:"unresolved_deps"`
	ByLanguage     map[string]LanguageStats `json:"by_language"`
}

// LanguageStats is the per-language breakdown within Stats.
type LanguageStats struct {
	Files   int `json:"files"`
	Lines   int `json:"lines"`
	Symbols int `json:"symbols"`
}

// AggregateStats computes project-wide counts for the status command.
func (s *Store) AggregateStats() (Stats, error) {
	var st Stats
	st.ByLanguage = map[string]LanguageStats{}

	rows, err := s.db.Query(`SELECT language, line_count FROM files`)
	if err != nil {
		return st, ctxerr.Wrap(ctxerr.KindIO, "aggregate files", err)
	}
	for rows.Next() {
		var lang string
		var lines int
		if err := rows.Scan(&lang, &lines); err != nil {
			rows.Close()
			return st, ctxerr.Wrap(ctxerr.KindIO, "scan aggregate file", err)
		}
		st.Files++
		st.Lines += lines
		ls := st.ByLanguage[lang]
		ls.Files++
		ls.Lines += lines
		st.ByLanguage[lang] = ls
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return st, err
	}

	symRows, err := s.db.Query(`SELECT f.language, COUNT(*) FROM symbols sy JOIN files f ON f.id = sy.file_id GROUP BY f.language`)
	if err != nil {
		return st, ctxerr.Wrap(ctxerr.KindIO, "aggregate symbols", err)
	}
	for symRows.Next() {
		var lang string
		var count int
		if err := symRows.Scan(&lang, &count); err != nil {
			symRows.Close()
			return st, ctxerr.Wrap(ctxerr.KindIO, "scan aggregate symbol", err)
		}
		st.Symbols += count
		ls := st.ByLanguage[lang]
		ls.Symbols += count
		st.ByLanguage[lang] = ls
	}
	symRows.Close()
	if err := symRows.Err(); err != nil {
		return st, err
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM dependencies`).Scan(&st.Dependencies); err != nil {
		return st, ctxerr.Wrap(ctxerr.KindIO, "count dependencies", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM dependencies WHERE resolved = 0`).Scan(&st.UnresolvedDeps); err != nil {
		return st, ctxerr.Wrap(ctxerr.KindIO, "count unresolved dependencies", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM decisions`).Scan(&st.Decisions); err != nil {
		return st, ctxerr.Wrap(ctxerr.KindIO, "count decisions", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM knowledge_notes`).Scan(&st.Notes); err != nil {
		return st, ctxerr.Wrap(ctxerr.KindIO, "count notes", err)
	}
	return st, nil
}

// HealthWarnings is the {fragile, large, dead} triple from spec.md §4.6.
type HealthWarnings struct {
	Fragile []File `json:"fragile"`
	Large   []File `json:"large"`
	Dead    []File `json:"dead"`
}

// entryPointBasenames are conventional filenames per language that
// exempt an otherwise-dead file from the Dead category.
var entryPointBasenames = map[string]bool{
	"mod.rs":      true,
	"lib.rs":      true,
	"__init__.py": true,
}

func isEntryPoint(path string) bool {
	base := filepath.Base(path)
	if entryPointBasenames[base] {
		return true
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem == "main" || stem == "index"
}

// HealthWarnings computes the fragile/large/dead categories, each sorted
// by descending severity.
func (s *Store) HealthWarnings() (HealthWarnings, error) {
	files, err := s.AllFiles()
	if err != nil {
		return HealthWarnings{}, err
	}

	directDependents := map[int64]int{}
	rows, err := s.db.Query(`
		SELECT target_file_id, COUNT(*) FROM dependencies
		WHERE resolved = 1 GROUP BY target_file_id
	`)
	if err != nil {
		return HealthWarnings{}, ctxerr.Wrap(ctxerr.KindIO, "count direct dependents", err)
	}
	for rows.Next() {
		var target int64
		var count int
		if err := rows.Scan(&target, &count); err != nil {
			rows.Close()
			return HealthWarnings{}, ctxerr.Wrap(ctxerr.KindIO, "scan dependent count", err)
		}
		directDependents[target] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return HealthWarnings{}, err
	}

	var hw HealthWarnings
	for _, f := range files {
		deps := directDependents[f.ID]
		if f.ChurnScore > 5.0 && deps > 3 {
			hw.Fragile = append(hw.Fragile, f)
		}
		if f.LineCount > 500 {
			hw.Large = append(hw.Large, f)
		}
		if f.CommitCount == 0 && deps == 0 && !isEntryPoint(f.Path) {
			hw.Dead = append(hw.Dead, f)
		}
	}

	sortBySeverity(hw.Fragile, func(f File) float64 { return f.ChurnScore })
	sortBySeverity(hw.Large, func(f File) float64 { return float64(f.LineCount) })
	sortBySeverity(hw.Dead, func(f File) float64 { return float64(f.LineCount) })
	return hw, nil
}

func sortBySeverity(files []File, score func(File) float64) {
	for i := 1; i < len(files); i++ {
		j := i
		for j > 0 && score(files[j-1]) < score(files[j]) {
			files[j-1], files[j] = files[j], files[j-1]
			j--
		}
	}
}
