package ctx

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/ctxagent/ctx/internal/ctxerr"
	"github.com/ctxagent/ctx/internal/gitlog"
	"github.com/ctxagent/ctx/internal/lang"
	"github.com/ctxagent/ctx/internal/lockfile"
	"github.com/ctxagent/ctx/internal/scanner"
	"github.com/ctxagent/ctx/internal/store"
)

// Engine owns one project's Store connection and the single-writer lock
// around it. It is the collaborator the CLI and watcher both drive.
type Engine struct {
	Root     string
	DataDir  string
	Store    *store.Store
	Phase    Phase
	lockPath string
}

// Open resolves the project's data directory, opens (creating if
// absent) its Store, and applies any pending schema migrations. It does
// not acquire the writer lock — callers take that per-pass via Lock.
func Open(projectRoot string) (*Engine, error) {
	dataDir, err := EnsureProjectDataDir(projectRoot)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(filepath.Join(dataDir, "store.db"))
	if err != nil {
		return nil, err
	}
	if err := s.InitSchema(); err != nil {
		s.Close()
		return nil, err
	}
	return &Engine{
		Root:     projectRoot,
		DataDir:  dataDir,
		Store:    s,
		Phase:    PhaseIdle,
		lockPath: filepath.Join(dataDir, "watcher.lock"),
	}, nil
}

// Close releases the Store connection.
func (e *Engine) Close() error {
	return e.Store.Close()
}

// Lock acquires the cross-process writer lock for the duration of one
// pass, per spec.md §5.
func (e *Engine) Lock() (*lockfile.Lock, error) {
	return lockfile.Acquire(e.lockPath, lockfile.DefaultTimeout)
}

// Run executes one full indexing pass: Scanning -> Parsing -> Persisting
// -> Resolving -> GitAnalyzing -> Done. It does not acquire the writer
// lock itself — callers wrap Run with Lock/Release.
func (e *Engine) Run() (Summary, error) {
	start := time.Now()
	var summary Summary

	e.Phase = PhaseScanning
	candidates, err := scanner.Walk(e.Root)
	if err != nil {
		return summary, err
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Path < candidates[j].Path })
	summary.FilesTotal = len(candidates)

	generation := time.Now().UnixNano()

	e.Phase = PhaseParsing
	type parsed struct {
		candidate scanner.Candidate
		unchanged bool
		result    lang.Result
		err       error
	}
	parsedResults := make([]parsed, len(candidates))

	toParse := make([]int, 0, len(candidates))
	for i, c := range candidates {
		existing, lookupErr := e.Store.FileByPath(c.Path)
		if lookupErr != nil {
			return summary, lookupErr
		}
		if existing != nil && existing.Hash == c.Hash {
			parsedResults[i] = parsed{candidate: c, unchanged: true}
			continue
		}
		toParse = append(toParse, i)
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > len(toParse) {
		numWorkers = len(toParse)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	indexCh := make(chan int, len(toParse))
	for _, idx := range toParse {
		indexCh <- idx
	}
	close(indexCh)

	done := make(chan struct{}, numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			for idx := range indexCh {
				c := candidates[idx]
				res, perr := func() (res lang.Result, err error) {
					// A parser panic is recovered per file: the file keeps its
					// line count and gets an empty symbol/import set.
					defer func() {
						if r := recover(); r != nil {
							res = lang.Result{LineCount: c.LineCount}
							err = ctxerr.New(ctxerr.KindParse, fmt.Sprintf("parser panic in %s: %v", c.Path, r))
						}
					}()
					return lang.Dispatch(c.Language).Parse(c.Bytes)
				}()
				parsedResults[idx] = parsed{candidate: c, result: res, err: perr}
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < numWorkers; w++ {
		<-done
	}

	e.Phase = PhasePersisting
	var skipped []string
	for _, pr := range parsedResults {
		if pr.unchanged {
			continue
		}
		if pr.err != nil {
			skipped = append(skipped, pr.candidate.Path)
		}

		fileID, err := e.Store.UpsertFile(pr.candidate.Path, pr.candidate.Language, pr.result.LineCount, pr.candidate.Hash, generation, time.Now())
		if err != nil {
			return summary, err
		}
		syms := make([]store.Symbol, len(pr.result.Symbols))
		for i, s := range pr.result.Symbols {
			syms[i] = store.Symbol{Name: s.Name, Kind: s.Kind, Signature: s.Signature, StartLine: s.StartLine, EndLine: s.EndLine}
		}
		if err := e.Store.ReplaceSymbolsForFile(fileID, syms); err != nil {
			return summary, err
		}
		if err := e.Store.ReplaceImportsForFile(fileID, pr.result.Imports); err != nil {
			return summary, err
		}
		summary.FilesChanged++
		summary.Symbols += len(syms)
	}

	// Bump generation on every unchanged file too, so reconciliation only
	// removes files genuinely absent from this scan.
	for _, pr := range parsedResults {
		if !pr.unchanged {
			continue
		}
		if _, err := e.Store.UpsertFile(pr.candidate.Path, pr.candidate.Language, pr.candidate.LineCount, pr.candidate.Hash, generation, time.Now()); err != nil {
			return summary, err
		}
	}

	removed, err := e.Store.ReconcileStale(generation)
	if err != nil {
		return summary, err
	}
	summary.FilesRemoved = len(removed)

	e.Phase = PhaseResolving
	resolved, err := e.Store.ResolveImports()
	if err != nil {
		return summary, err
	}
	summary.EdgesResolved = resolved

	allFiles, err := e.Store.AllFiles()
	if err != nil {
		return summary, err
	}
	unresolved, err := countUnresolved(e.Store)
	if err != nil {
		return summary, err
	}
	summary.EdgesUnresolved = unresolved

	e.Phase = PhaseGitAnalyzing
	if err := e.runGitAnalysis(allFiles, &summary); err != nil {
		// GitAbsent is a no-op, not a failure, per spec.md §4.5/§7.
		if kind, ok := ctxerr.KindOf(err); !ok || kind != ctxerr.KindGitAbsent {
			return summary, err
		}
	}

	e.Phase = PhaseDone
	summary.Elapsed = time.Since(start)
	summary.SkippedFiles = skipped
	return summary, nil
}

func (e *Engine) runGitAnalysis(files []store.File, summary *Summary) error {
	churn, decisions, err := gitlog.Analyze(e.Root, time.Now())
	if err != nil {
		return err
	}

	byPath := make(map[string]int64, len(files))
	for _, f := range files {
		byPath[f.Path] = f.ID
	}

	stats := make([]store.FileGitStat, 0, len(churn))
	for _, c := range churn {
		fileID, ok := byPath[c.Path]
		if !ok {
			continue
		}
		stats = append(stats, store.FileGitStat{FileID: fileID, CommitCount: c.CommitCount, ChurnScore: c.ChurnScore})
	}
	if err := e.Store.BulkUpdateGitStats(stats); err != nil {
		return err
	}
	summary.Commits = len(churn)

	for _, d := range decisions {
		ref := d.CommitHash
		body := d.Body
		_, err := e.Store.InsertDecision(store.Decision{
			Source:    store.SourceCommit,
			Reference: &ref,
			Timestamp: d.Timestamp,
			Kind:      d.Kind,
			Subject:   d.Subject,
			Body:      &body,
		})
		if err != nil {
			return err
		}
		summary.Decisions++
	}
	return nil
}

func countUnresolved(s *store.Store) (int, error) {
	st, err := s.AggregateStats()
	if err != nil {
		return 0, err
	}
	return st.UnresolvedDeps, nil
}
