// Package watch drives incremental re-indexing from filesystem events,
// debouncing per path and cascading through the same scan/parse/persist
// path used by a one-shot pass.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// DebounceWindow is the per-path coalescing delay, per spec.md §4.7.
const DebounceWindow = 250 * time.Millisecond

// ChangedPath is one debounced filesystem event ready for re-indexing.
type ChangedPath struct {
	Path    string // absolute
	Removed bool
}

// Watcher wraps an fsnotify watcher with a per-path debouncer. Reindex
// is invoked once per settled path; callers own the single-writer
// discipline (typically via internal/lockfile) around their Reindex.
type Watcher struct {
	root    string
	fsw     *fsnotify.Watcher
	reindex func(ChangedPath)

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed chan struct{}
}

// New creates a Watcher rooted at root. reindex is called from the
// debounce goroutine for each settled change.
func New(root string, reindex func(ChangedPath)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ctxerr.Wrap(ctxerr.KindIO, "create fsnotify watcher", err)
	}
	w := &Watcher{
		root:    root,
		fsw:     fsw,
		reindex: reindex,
		timers:  map[string]*time.Timer{},
		closed:  make(chan struct{}),
	}
	if err := w.recursiveAdd(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) recursiveAdd(root string) error {
	entries, err := walkDirs(root)
	if err != nil {
		return ctxerr.WrapPath(ctxerr.KindIO, "walk directories for watch", root, err)
	}
	for _, dir := range entries {
		if err := w.fsw.Add(dir); err != nil {
			return ctxerr.WrapPath(ctxerr.KindIO, "watch directory", dir, err)
		}
	}
	return nil
}

// Run blocks, dispatching debounced ChangedPath events via reindex,
// until Close is called.
func (w *Watcher) Run() error {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.debounce(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return ctxerr.Wrap(ctxerr.KindIO, "watch error", err)
			}
		case <-w.closed:
			return nil
		}
	}
}

func (w *Watcher) debounce(event fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := event.Name
	removed := event.Op&(fsnotify.Remove|fsnotify.Rename) != 0

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(DebounceWindow, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.reindex(ChangedPath{Path: path, Removed: removed})
	})
}

// Close stops watching and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	close(w.closed)
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func walkDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == "node_modules" || name == "dist" || name == "target" || name == ".ctx-agent" {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}
