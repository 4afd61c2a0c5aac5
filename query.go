package ctx

import (
	"path"
	"sort"
	"time"

	"github.com/ctxagent/ctx/internal/ctxerr"
	"github.com/ctxagent/ctx/internal/graph"
	"github.com/ctxagent/ctx/internal/store"
)

func notTrackedError(path string) error {
	return ctxerr.New(ctxerr.KindUsage, "not a tracked file: "+path)
}

// SearchSymbols ranks symbol matches for term, falling back to a literal
// substring scan when the FTS index yields nothing.
func (e *Engine) SearchSymbols(term string) ([]store.SearchMatch, error) {
	return e.Store.SearchSymbols(e.Root, term)
}

// BlastRadius computes the blast radius of the tracked file at
// relativePath, per spec.md §4.4.
func (e *Engine) BlastRadius(relativePath string) (graph.BlastRadius, error) {
	f, err := e.Store.FileByPath(relativePath)
	if err != nil {
		return graph.BlastRadius{}, err
	}
	if f == nil {
		return graph.BlastRadius{}, notTrackedError(relativePath)
	}
	return graph.Compute(e.Store, f.ID, f.ChurnScore)
}

// Decisions returns every decision ordered by timestamp descending.
func (e *Engine) Decisions() ([]store.Decision, error) {
	return e.Store.Decisions()
}

// Learn inserts a knowledge note, optionally tied to a tracked file.
func (e *Engine) Learn(body string, relatedPath string, ts time.Time) (store.KnowledgeNote, error) {
	var fileID *int64
	if relatedPath != "" {
		f, err := e.Store.FileByPath(relatedPath)
		if err != nil {
			return store.KnowledgeNote{}, err
		}
		if f != nil {
			fileID = &f.ID
		}
	}
	id, err := e.Store.InsertNote(body, fileID, ts)
	if err != nil {
		return store.KnowledgeNote{}, err
	}
	return store.KnowledgeNote{ID: id, Timestamp: ts, Body: body, RelatedFileID: fileID}, nil
}

// Warnings returns the fragile/large/dead health categories.
func (e *Engine) Warnings() (store.HealthWarnings, error) {
	return e.Store.HealthWarnings()
}

// Status returns the project-wide aggregate counts.
func (e *Engine) Status() (store.Stats, error) {
	return e.Store.AggregateStats()
}

// DirEntry is one directory's rollup in the Map output.
type DirEntry struct {
	Dir     string `json:"dir"`
	Files   int    `json:"files"`
	Lines   int    `json:"lines"`
	Symbols int    `json:"symbols"`
}

// Map returns directory-aggregated file/line/symbol counts.
func (e *Engine) Map() ([]DirEntry, error) {
	files, err := e.Store.AllFiles()
	if err != nil {
		return nil, err
	}
	symbolsByFile := map[int64]int{}
	for _, f := range files {
		syms, err := e.Store.SymbolsByFile(f.ID)
		if err != nil {
			return nil, err
		}
		symbolsByFile[f.ID] = len(syms)
	}

	byDir := map[string]*DirEntry{}
	for _, f := range files {
		dir := path.Dir(f.Path)
		entry, ok := byDir[dir]
		if !ok {
			entry = &DirEntry{Dir: dir}
			byDir[dir] = entry
		}
		entry.Files++
		entry.Lines += f.LineCount
		entry.Symbols += symbolsByFile[f.ID]
	}

	out := make([]DirEntry, 0, len(byDir))
	for _, entry := range byDir {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dir < out[j].Dir })
	return out, nil
}
