//go:build windows

package sandboxexec

import "os/exec"

// applyPlatformProcAttr is a no-op on Windows: there is no process-group or
// parent-death-signal concept analogous to the unix SysProcAttr fields this
// package otherwise uses.
func applyPlatformProcAttr(cmd *exec.Cmd) {}
