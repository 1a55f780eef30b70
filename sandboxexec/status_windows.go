//go:build windows

package sandboxexec

import "os"

// synthesizeSignalStatus builds the status used when the Orchestrator kills
// the child itself. Windows has no signal concept; the "128 + N" value is
// carried as a plain exit code instead, matching the platform's from-raw
// exit-status conversion.
func synthesizeSignalStatus(signal int) ExitStatus {
	return ExitStatus{code: 128 + signal}
}

// statusFromProcessState converts a completed child's *os.ProcessState into
// an ExitStatus. Windows processes never report Signaled().
func statusFromProcessState(ps *os.ProcessState) ExitStatus {
	return ExitStatus{code: ps.ExitCode()}
}
