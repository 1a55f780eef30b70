package sandboxexec

import (
	"os"
	"time"
)

// Debugf receives diagnostic messages from the Orchestrator. It must be
// safe to call from any goroutine.
type Debugf func(format string, args ...any)

// Orchestrator runs [ExecRequest]s under a configured [SandboxVariant].
//
// An Orchestrator is safe for concurrent use: each call to [Orchestrator.Run]
// spawns its own child and is otherwise self-contained. Interrupt, if set, is
// shared by reference, so firing it affects every Run call currently in
// flight.
type Orchestrator struct {
	// Variant selects the sandbox mechanism.
	Variant SandboxVariant

	// Policy is queried by the active encoder and by the child spawner.
	Policy Policy

	// HelperPath is the external sandbox-helper executable, required when
	// Variant == SandboxLinuxHelper.
	HelperPath string

	// Interrupt, if non-nil, is raced against child completion and the
	// request's timeout.
	Interrupt *Interrupt

	// Debugf receives diagnostic trace messages. May be nil.
	Debugf Debugf
}

func (o *Orchestrator) debugf(format string, args ...any) {
	if o.Debugf != nil {
		o.Debugf(format, args...)
	}
}

// Run spawns req.Command under the Orchestrator's sandbox variant, drains
// its output subject to the output caps, and races completion against the
// request's timeout and the Orchestrator's interrupt.
//
// The child is always either reaped or explicitly killed before Run
// returns.
func (o *Orchestrator) Run(req ExecRequest) (Result, error) {
	start := time.Now()

	if len(req.Command) == 0 {
		return Result{}, &Error{Kind: KindIO, Cause: ErrEmptyCommand}
	}

	child, err := o.spawn(req)
	if err != nil {
		return Result{}, err
	}

	raw, err := o.consume(child, req)
	if err != nil {
		return Result{}, err
	}

	return Classify(raw, o.Variant, time.Since(start))
}

// spawn dispatches on o.Variant to the matching encoder and starts the
// resulting child.
func (o *Orchestrator) spawn(req ExecRequest) (*spawnedChild, error) {
	switch o.Variant {
	case SandboxNone:
		o.debugf("sandboxexec: spawning %q (no sandbox)", req.Command[0])

		child, err := spawnChild(spawnSpec{
			program: req.Command[0],
			args:    req.Command[1:],
			cwd:     req.Cwd,
			env:     req.Env,
			policy:  o.Policy,
			stdio:   StdioRedirectForTool,
		})
		if err != nil {
			return nil, ioError(err)
		}

		return child, nil

	case SandboxSeatbelt:
		args := seatbeltArgs(req.Command, o.Policy, req.Cwd)
		o.debugf("sandboxexec: spawning under seatbelt (%d sandbox-exec args)", len(args))

		child, err := spawnChild(spawnSpec{
			program: seatbeltExecutable,
			args:    args,
			cwd:     req.Cwd,
			env:     req.Env,
			policy:  o.Policy,
			stdio:   StdioRedirectForTool,
		})
		if err != nil {
			return nil, ioError(err)
		}

		return child, nil

	case SandboxLinuxHelper:
		if o.HelperPath == "" {
			return nil, &Error{Kind: KindHelperNotProvided, Cause: ErrHelperNotProvided}
		}

		args, err := linuxHelperArgs(req.Command, o.Policy, req.Cwd)
		if err != nil {
			return nil, ioError(err)
		}

		o.debugf("sandboxexec: spawning under linux helper %q", o.HelperPath)

		child, err := spawnChild(spawnSpec{
			program: o.HelperPath,
			args:    args,
			argv0:   linuxHelperArg0,
			cwd:     req.Cwd,
			env:     req.Env,
			policy:  o.Policy,
			stdio:   StdioRedirectForTool,
		})
		if err != nil {
			return nil, ioError(err)
		}

		return child, nil

	default:
		return nil, ioErrorf("sandboxexec: unknown sandbox variant %d", int(o.Variant))
	}
}

// capResult carries an Output Capper's result back to consume's select.
type capResult struct {
	data []byte
	err  error
}

// consume drains stdout/stderr through two Output Cappers and races child
// completion against the request's timeout and the Orchestrator's
// interrupt, per spec.md §4.4. On timeout or interrupt, start a kill and
// synthesize the exit status immediately rather than waiting for the child
// to actually finish exiting — the cappers still complete normally because
// the kill closes the child's pipes.
func (o *Orchestrator) consume(child *spawnedChild, req ExecRequest) (rawOutcome, error) {
	if child.stdout == nil || child.stderr == nil {
		return rawOutcome{}, ioErrorf("sandboxexec: stdio pipes unexpectedly unavailable")
	}

	stdoutCh := make(chan capResult, 1)
	stderrCh := make(chan capResult, 1)

	go func() {
		data, err := capOutput(child.stdout, MaxStreamBytes, MaxStreamLines)
		_ = child.stdout.Close()
		stdoutCh <- capResult{data, err}
	}()

	go func() {
		data, err := capOutput(child.stderr, MaxStreamBytes, MaxStreamLines)
		_ = child.stderr.Close()
		stderrCh <- capResult{data, err}
	}()

	exitCh := make(chan *os.ProcessState, 1)
	waitErrCh := make(chan error, 1)

	go func() {
		// Process.Wait, unlike Cmd.Wait, leaves the stdout/stderr pipes open,
		// so the cappers can drain them to EOF after the child has exited.
		ps, waitErr := child.cmd.Process.Wait()
		if waitErr != nil {
			waitErrCh <- waitErr

			return
		}

		exitCh <- ps
	}()

	timer := time.NewTimer(req.timeout())
	defer timer.Stop()

	var status ExitStatus

	select {
	case ps := <-exitCh:
		status = statusFromProcessState(ps)
	case waitErr := <-waitErrCh:
		return rawOutcome{}, ioError(waitErr)
	case <-timer.C:
		o.debugf("sandboxexec: timeout after %s, killing child", req.timeout())

		if err := startKill(child); err != nil {
			return rawOutcome{}, ioError(err)
		}

		status = synthesizeTimeoutStatus()
	case <-o.interrupted():
		o.debugf("sandboxexec: interrupted, killing child")

		if err := startKill(child); err != nil {
			return rawOutcome{}, ioError(err)
		}

		status = synthesizeInterruptStatus()
	}

	stdoutRes := <-stdoutCh
	if stdoutRes.err != nil {
		return rawOutcome{}, ioError(stdoutRes.err)
	}

	stderrRes := <-stderrCh
	if stderrRes.err != nil {
		return rawOutcome{}, ioError(stderrRes.err)
	}

	return rawOutcome{status: status, stdout: stdoutRes.data, stderr: stderrRes.data}, nil
}

// interrupted returns the Orchestrator's interrupt channel, or a nil channel
// (which blocks forever in a select) when no Interrupt is configured.
func (o *Orchestrator) interrupted() <-chan struct{} {
	if o.Interrupt == nil {
		return nil
	}

	return o.Interrupt.Notified()
}
