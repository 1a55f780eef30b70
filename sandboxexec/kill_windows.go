//go:build windows

package sandboxexec

// startKill asynchronously kills the child. Windows has no process-group
// signaling primitive analogous to unix's negative-pid kill, so this only
// reaches the immediate child.
func startKill(child *spawnedChild) error {
	if child.cmd.Process == nil {
		return nil
	}

	return child.cmd.Process.Kill()
}
