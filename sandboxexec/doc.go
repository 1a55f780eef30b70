// Package sandboxexec runs a tokenized command vector inside an
// OS-mediated sandbox, captures and bounds its output, enforces a wall-clock
// timeout and a cooperative interrupt, and reports a structured result that
// distinguishes ordinary command failures from sandbox-policy denials.
//
// # Planning vs execution
//
// [Policy] is an abstract, platform-independent capability description. It is
// turned into a concrete child-process invocation by one of two encoders
// depending on the active [SandboxVariant]: [seatbeltArgs] embeds policy text
// directly on the command line for macOS's sandbox-exec, while
// [linuxHelperArgs] marshals the policy as JSON and hands it to an external
// helper binary. [SandboxNone] runs the command directly with no encoding.
//
// [Orchestrator.Run] ties the pieces together: it asks the active encoder for
// an invocation, spawns the child via the unix/windows-specific spawn
// implementation, drains stdout/stderr concurrently through two
// [capOutput] goroutines, races child completion against a timeout and an
// external interrupt, and classifies the outcome ([Classify]) into a
// [Result] or an [Error].
//
// # Security note
//
// This package does not implement sandbox primitives itself; it composes a
// policy and delegates enforcement to the OS sandbox-exec utility or to an
// external Landlock/seccomp helper. Effective security depends entirely on
// those collaborators.
package sandboxexec
