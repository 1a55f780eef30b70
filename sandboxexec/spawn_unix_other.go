//go:build unix && !linux

package sandboxexec

import (
	"os/exec"
	"syscall"
)

// applyPlatformProcAttr places the child in its own process group. Parent-
// death signaling via PR_SET_PDEATHSIG is Linux-specific (prctl(2)); other
// unix platforms (macOS, BSDs) have no equivalent primitive exposed through
// syscall.SysProcAttr, so kill-on-drop there relies solely on the
// Orchestrator always killing or reaping the child before returning.
func applyPlatformProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
