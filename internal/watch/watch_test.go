package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type collector struct {
	mu    sync.Mutex
	calls []ChangedPath
}

func (c *collector) record(cp ChangedPath) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, cp)
}

func (c *collector) snapshot() []ChangedPath {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChangedPath, len(c.calls))
	copy(out, c.calls)
	return out
}

func TestNew_WatchesRootAndSubdirectoriesSkippingExcluded(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))

	c := &collector{}
	w, err := New(root, c.record)
	require.NoError(t, err)
	defer w.Close()

	dirs, err := walkDirs(root)
	require.NoError(t, err)
	require.Contains(t, dirs, root)
	require.Contains(t, dirs, filepath.Join(root, "src"))
	require.NotContains(t, dirs, filepath.Join(root, "node_modules"))
	require.NotContains(t, dirs, filepath.Join(root, ".git"))
}

func TestWatcher_DebouncesRapidEventsOnSamePathIntoOneReindex(t *testing.T) {
	root := t.TempDir()
	c := &collector{}
	w, err := New(root, c.record)
	require.NoError(t, err)
	defer w.Close()

	go w.Run()

	file := filepath.Join(root, "a.go")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("package a\n"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(c.snapshot()) > 0
	}, 2*time.Second, 20*time.Millisecond)

	time.Sleep(DebounceWindow + 100*time.Millisecond)
	calls := c.snapshot()
	require.Len(t, calls, 1)
	require.False(t, calls[0].Removed)
}

func TestWatcher_RemoveEventIsMarkedRemoved(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.go")
	require.NoError(t, os.WriteFile(file, []byte("package a\n"), 0o644))

	c := &collector{}
	w, err := New(root, c.record)
	require.NoError(t, err)
	defer w.Close()

	go w.Run()

	require.NoError(t, os.Remove(file))

	require.Eventually(t, func() bool {
		calls := c.snapshot()
		return len(calls) == 1 && calls[0].Removed
	}, 2*time.Second, 20*time.Millisecond)
}

func TestClose_StopsRunWithoutError(t *testing.T) {
	root := t.TempDir()
	c := &collector{}
	w, err := New(root, c.record)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Run() }()

	require.NoError(t, w.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}
