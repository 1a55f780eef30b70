//go:build linux

package sandboxexec

import (
	"os/exec"
	"syscall"
)

// applyPlatformProcAttr places the child in its own process group (so a
// timeout/interrupt kill can take any grandchildren it spawned with it) and
// requests SIGTERM if this process exits first.
//
// Unlike a pre-exec hook, Go's os/exec gives no callback to run in the
// forked child before exec; the getppid()==1 race ("parent already became
// init by the time PR_SET_PDEATHSIG would have been armed") that a pre-exec
// hook closes cannot be replicated from the parent side. Pdeathsig still
// covers the overwhelmingly common case (parent exits after the child is
// already running) and is documented as an accepted, narrower window
// compared to a pre-exec-capable runtime.
func applyPlatformProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
