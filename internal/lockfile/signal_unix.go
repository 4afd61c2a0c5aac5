//go:build !windows

package lockfile

import (
	"os"
	"syscall"
)

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds; signal 0 probes liveness
	// without actually sending a signal.
	return proc.Signal(syscall.Signal(0)) == nil
}
