// Package lockfile implements the cross-process single-writer guard: a
// pid file in the project's data directory that at most one indexer
// process may hold at a time.
package lockfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// DefaultTimeout is how long Acquire waits for a contended lock before
// giving up, per spec.md §5.
const DefaultTimeout = 30 * time.Second

const pollInterval = 100 * time.Millisecond

// Lock is a held advisory lock; Release removes the underlying file.
type Lock struct {
	path string
}

// Acquire takes the lock at path, waiting up to timeout if another
// process already holds it. It returns a KindBusy ctxerr.Error if the
// timeout elapses without success.
func Acquire(path string, timeout time.Duration) (*Lock, error) {
	deadline := time.Now().Add(timeout)
	for {
		if ok, err := tryCreate(path); err != nil {
			return nil, err
		} else if ok {
			return &Lock{path: path}, nil
		}

		if stale, err := isStale(path); err != nil {
			return nil, err
		} else if stale {
			// The previous holder died without cleaning up; reclaim it.
			os.Remove(path)
			continue
		}

		if time.Now().After(deadline) {
			return nil, ctxerr.New(ctxerr.KindBusy, fmt.Sprintf("lock held by another process: %s", path))
		}
		time.Sleep(pollInterval)
	}
}

func tryCreate(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, ctxerr.WrapPath(ctxerr.KindIO, "create lock file", path, err)
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d\n", os.Getpid())
	if err != nil {
		return false, ctxerr.WrapPath(ctxerr.KindIO, "write lock pid", path, err)
	}
	return true, nil
}

// isStale reports whether the lock file names a pid that is no longer
// running, meaning it can be safely reclaimed.
func isStale(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, ctxerr.WrapPath(ctxerr.KindIO, "read lock file", path, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, nil // unreadable pid: leave it, don't guess
	}
	return !processAlive(pid), nil
}

// Release removes the lock file. If the file is already gone (for
// example, on a second call), it returns nil.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return ctxerr.WrapPath(ctxerr.KindIO, "release lock file", l.path, err)
	}
	return nil
}
