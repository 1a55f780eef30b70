//go:build unix

package sandboxexec

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// startKill asynchronously signals the child's entire process group with
// SIGKILL, so any grandchildren it spawned (e.g. a shell running a
// pipeline) are killed along with it rather than being left orphaned.
//
// This must not block waiting for the group to actually die; the caller
// (the Orchestrator) synthesizes the exit status and moves on, relying on
// the cappers observing EOF once the pipes close.
func startKill(child *spawnedChild) error {
	if child.cmd.Process == nil {
		return nil
	}

	pgid, err := unix.Getpgid(child.cmd.Process.Pid)
	if err != nil {
		// The group lookup can fail if the child already exited; fall back
		// to signaling the process directly.
		return child.cmd.Process.Signal(syscall.SIGKILL)
	}

	killErr := unix.Kill(-pgid, unix.SIGKILL)
	if killErr != nil && killErr != unix.ESRCH {
		return killErr
	}

	return nil
}
