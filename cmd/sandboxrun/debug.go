package main

import (
	"fmt"
	"io"

	"github.com/nextlevelbuilder/sandboxrun/sandboxexec"
)

// DebugLogger provides structured trace output for a sandboxed invocation.
// It is disabled by default (when output is nil) and writes to stderr when
// enabled via --debug.
type DebugLogger struct {
	output io.Writer
}

// NewDebugLogger creates a new debug logger. If output is nil, the logger is
// disabled and all methods are no-ops.
func NewDebugLogger(output io.Writer) *DebugLogger {
	return &DebugLogger{output: output}
}

// Enabled reports whether debug logging is active.
func (d *DebugLogger) Enabled() bool {
	return d != nil && d.output != nil
}

// Section outputs a section header.
func (d *DebugLogger) Section(name string) {
	if !d.Enabled() {
		return
	}

	_, _ = fmt.Fprintf(d.output, "\n=== %s ===\n", name)
}

// Logf outputs a formatted debug line.
func (d *DebugLogger) Logf(format string, args ...any) {
	if !d.Enabled() {
		return
	}

	_, _ = fmt.Fprintf(d.output, format+"\n", args...)
}

// Debugf adapts the logger to sandboxexec.Debugf, so an Orchestrator can
// report its own trace messages (spawn, timeout, kill) through the same
// sink as the CLI's own startup trace.
func (d *DebugLogger) Debugf(format string, args ...any) {
	if !d.Enabled() {
		return
	}

	_, _ = fmt.Fprintf(d.output, "  "+format+"\n", args...)
}

// debugfOrNil returns d.Debugf as a sandboxexec.Debugf, or nil when d is
// disabled, so the Orchestrator's own nil-check stays the only branch.
func (d *DebugLogger) debugfOrNil() sandboxexec.Debugf {
	if !d.Enabled() {
		return nil
	}

	return d.Debugf
}
