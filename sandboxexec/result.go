package sandboxexec

import (
	"time"
)

// lossyUTF8 decodes b as UTF-8 for display, replacing each invalid byte with
// the Unicode replacement character rather than erroring.
func lossyUTF8(b []byte) string {
	// A []rune conversion maps every invalid byte to U+FFFD on its own.
	return string([]rune(string(b)))
}

// rawOutcome is the unclassified result of running a child to completion
// (naturally, via timeout, or via interrupt): its exit status plus whatever
// the two output cappers collected.
type rawOutcome struct {
	status ExitStatus
	stdout []byte
	stderr []byte
}

// Result is the successful, classified outcome of [Orchestrator.Run].
type Result struct {
	// ExitCode is the child's exit code, or -1 if none is available.
	ExitCode int

	// Stdout and Stderr are lossily decoded as UTF-8 for display.
	Stdout string
	Stderr string

	// Duration is the wall-clock time spent running the command.
	Duration time.Duration
}

// Classify maps a rawOutcome and the active sandbox variant onto a (Result,
// error) pair, per the rules in spec.md §4.5:
//
//   - a signal of signalTimeoutCode classifies as KindTimeout;
//   - any other signal classifies as KindSignal;
//   - otherwise, a non-zero exit code under a non-None variant classifies as
//     KindDenied (the caller decides whether to retry unsandboxed);
//   - otherwise, the outcome is a plain Result.
func Classify(raw rawOutcome, variant SandboxVariant, duration time.Duration) (Result, error) {
	if raw.status.Signaled() {
		signal := raw.status.Signal()
		if signal == signalTimeoutCode {
			return Result{}, &Error{Kind: KindTimeout}
		}

		return Result{}, &Error{Kind: KindSignal, Signal: signal}
	}

	code := raw.status.Code()

	stdout := lossyUTF8(raw.stdout)
	stderr := lossyUTF8(raw.stderr)

	if code != 0 && variant != SandboxNone {
		return Result{}, &Error{Kind: KindDenied, Code: code, Stdout: stdout, Stderr: stderr}
	}

	return Result{
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
		Duration: duration,
	}, nil
}
