//go:build windows

package lockfile

import "os"

// On Windows there is no signal-0 liveness probe; processAlive relies on
// os.FindProcess, which opens a handle to the process and fails when no
// process with that pid exists. That failure counts as not alive.
func processAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
