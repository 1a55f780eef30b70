package sandboxexec

// ExitStatus is this package's platform-independent view of a child's
// termination: either it exited with a code, or (unix only) it was killed by
// a signal. It is populated either from the real *os.ProcessState after a
// natural exit, or synthesized by the Orchestrator when it has to kill the
// child itself (timeout, interrupt).
type ExitStatus struct {
	// signaled is only ever true on unix-like platforms.
	signaled bool
	signal   int

	// code is the process exit code. -1 means "no code available" (e.g. the
	// process was killed by a signal and code() would not return one).
	code int
}

// Signaled reports whether the child terminated due to a signal rather than
// a normal exit. Always false on Windows.
func (s ExitStatus) Signaled() bool {
	return s.signaled
}

// Signal returns the terminating signal number. Only meaningful when
// Signaled() is true.
func (s ExitStatus) Signal() int {
	return s.signal
}

// Code returns the process exit code, or -1 if none is available.
func (s ExitStatus) Code() int {
	return s.code
}

// synthesizeTimeoutStatus builds the status used when the Orchestrator kills
// the child after its wall-clock budget elapses.
func synthesizeTimeoutStatus() ExitStatus {
	return synthesizeSignalStatus(signalTimeoutCode)
}

// synthesizeInterruptStatus builds the status used when the Orchestrator
// kills the child in response to an external interrupt.
func synthesizeInterruptStatus() ExitStatus {
	return synthesizeSignalStatus(signalKillCode)
}
