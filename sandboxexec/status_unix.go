//go:build unix

package sandboxexec

import (
	"os"
	"syscall"
)

// synthesizeSignalStatus builds a status that reports Signaled()==true with
// the given signal number. The "128 + signal" framing used elsewhere in this
// package is the raw unix wait-status encoding; the signal itself (64 for
// timeout, 9 for an external interrupt/SIGKILL) is what ExitStatus.Signal
// reports.
func synthesizeSignalStatus(signal int) ExitStatus {
	return ExitStatus{signaled: true, signal: signal, code: -1}
}

// statusFromProcessState converts a completed child's *os.ProcessState into
// an ExitStatus, extracting the signal when the child was killed rather than
// exiting normally.
func statusFromProcessState(ps *os.ProcessState) ExitStatus {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitStatus{signaled: true, signal: int(ws.Signal()), code: -1}
	}

	return ExitStatus{code: ps.ExitCode()}
}
