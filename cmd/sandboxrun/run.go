package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/nextlevelbuilder/sandboxrun/sandboxexec"
)

const executableName = "sandboxrun"

// Run is the CLI entry point, isolated from global state (stdio, os.Args,
// the environment) so it can be driven directly from tests. It returns the
// process exit code.
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	flags := flag.NewFlagSet(executableName, flag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.Usage = func() {}
	flags.SetOutput(&strings.Builder{})

	flagHelp := flags.BoolP("help", "h", false, "Show help")
	flagVersion := flags.BoolP("version", "v", false, "Show version and exit")
	flagCwd := flags.StringP("cwd", "C", "", "Run as if started in `dir` (default: current directory)")
	flagPolicyFile := flags.String("policy-file", "", "Load policy defaults from a JSON/JSONC `file`")
	flagSandbox := flags.String("sandbox", "none", "Sandbox variant: none, seatbelt, or linux-helper")
	flagHelperPath := flags.String("helper-path", "", "Path to the linux-helper executable (required for --sandbox=linux-helper)")
	flagTimeout := flags.Duration("timeout", sandboxexec.DefaultTimeout, "Wall-clock budget for the command")
	flagFullDiskRead := flags.Bool("full-disk-read", false, "Allow reading the entire filesystem")
	flagFullDiskWrite := flags.Bool("full-disk-write", false, "Allow writing the entire filesystem")
	flagFullNetwork := flags.Bool("full-network", false, "Allow full network access")
	flagWritableRoots := flags.StringArray("writable-root", nil, "Add a writable root (repeatable)")
	flagEnv := flags.StringArray("env", nil, "Set a child environment variable as KEY=VALUE (repeatable)")
	flagDebug := flags.Bool("debug", false, "Print orchestrator trace to stderr")

	if err := flags.Parse(args[1:]); err != nil {
		fprintError(stderr, err)
		fprintln(stderr)
		printUsage(stderr)

		return 1
	}

	if *flagVersion {
		fprintf(stdout, "%s\n", formatVersion())

		return 0
	}

	command := flags.Args()

	if *flagHelp || len(command) == 0 {
		printUsage(stdout)

		return 0
	}

	var debug *DebugLogger
	if *flagDebug {
		debug = NewDebugLogger(stderr)
	}

	cwd := *flagCwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			fprintError(stderr, fmt.Errorf("resolving cwd: %w", err))

			return 1
		}

		cwd = wd
	}

	variant, err := parseSandboxVariant(*flagSandbox)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	policy := sandboxexec.Policy{
		FullDiskRead:  *flagFullDiskRead,
		FullDiskWrite: *flagFullDiskWrite,
		FullNetwork:   *flagFullNetwork,
		WritableRoots: *flagWritableRoots,
	}

	helperPath := *flagHelperPath

	if *flagPolicyFile != "" {
		pf, err := loadPolicyFile(*flagPolicyFile)
		if err != nil {
			fprintError(stderr, err)

			return 1
		}

		policy = pf.applyTo(policy)

		if !flags.Changed("sandbox") && pf.Sandbox != "" {
			variant, err = parseSandboxVariant(pf.Sandbox)
			if err != nil {
				fprintError(stderr, err)

				return 1
			}
		}

		if helperPath == "" {
			helperPath = pf.HelperPath
		}
	}

	childEnv, err := parseEnvFlags(*flagEnv)
	if err != nil {
		fprintError(stderr, err)

		return 1
	}

	if debug.Enabled() {
		debug.Section("Request")
		debug.Logf("  command: %v", command)
		debug.Logf("  cwd: %s", cwd)
		debug.Logf("  sandbox: %s", variant)
		debug.Logf("  timeout: %s", *flagTimeout)
		debug.Logf("  policy: %+v", policy)
	}

	interrupt := sandboxexec.NewInterrupt()
	if sigCh != nil {
		go forwardInterrupt(sigCh, interrupt)
	}

	orch := &sandboxexec.Orchestrator{
		Variant:    variant,
		Policy:     policy,
		HelperPath: helperPath,
		Interrupt:  interrupt,
		Debugf:     debug.debugfOrNil(),
	}

	req := sandboxexec.ExecRequest{
		Command: command,
		Cwd:     cwd,
		Timeout: *flagTimeout,
		Env:     childEnv,
	}

	result, runErr := orch.Run(req)

	return report(stdout, stderr, result, runErr)
}

// forwardInterrupt turns every signal observed on sigCh into an Interrupt
// notification, until sigCh is closed.
func forwardInterrupt(sigCh <-chan os.Signal, interrupt *sandboxexec.Interrupt) {
	if _, ok := <-sigCh; !ok {
		return
	}

	interrupt.Notify()

	for range sigCh {
		interrupt.Notify()
	}
}

// report prints the Result or classified Error to stdout/stderr and returns
// the process exit code.
func report(stdout, stderr io.Writer, result sandboxexec.Result, runErr error) int {
	if runErr == nil {
		_, _ = io.WriteString(stdout, result.Stdout)
		_, _ = io.WriteString(stderr, result.Stderr)

		return result.ExitCode
	}

	var sbErr *sandboxexec.Error

	if !errors.As(runErr, &sbErr) {
		fprintError(stderr, runErr)

		return 1
	}

	_, _ = io.WriteString(stdout, sbErr.Stdout)
	_, _ = io.WriteString(stderr, sbErr.Stderr)

	switch sbErr.Kind {
	case sandboxexec.KindTimeout:
		fprintError(stderr, sbErr)

		return 1
	case sandboxexec.KindSignal:
		fprintError(stderr, sbErr)

		return 128 + sbErr.Signal
	case sandboxexec.KindDenied:
		fprintError(stderr, sbErr)

		return sbErr.Code
	default:
		fprintError(stderr, sbErr)

		return 1
	}
}

func parseSandboxVariant(name string) (sandboxexec.SandboxVariant, error) {
	switch name {
	case "none", "":
		return sandboxexec.SandboxNone, nil
	case "seatbelt":
		return sandboxexec.SandboxSeatbelt, nil
	case "linux-helper":
		return sandboxexec.SandboxLinuxHelper, nil
	default:
		return 0, fmt.Errorf("unknown --sandbox value %q (want none, seatbelt, or linux-helper)", name)
	}
}

func parseEnvFlags(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(entries))

	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --env entry %q (want KEY=VALUE)", entry)
		}

		out[key] = value
	}

	return out, nil
}

const usageHelp = `sandboxrun - run a command under a sandbox policy

Usage: sandboxrun [flags] <command> [args]

Flags:
  -h, --help                  Show help
  -v, --version               Show version and exit
  -C, --cwd <dir>             Run as if started in <dir>
      --policy-file <file>    Load policy defaults from a JSON/JSONC file
      --sandbox <variant>     none, seatbelt, or linux-helper (default: none)
      --helper-path <path>    linux-helper executable path
      --timeout <duration>    Wall-clock budget, e.g. 30s (default: 10s)
      --full-disk-read        Allow reading the entire filesystem
      --full-disk-write       Allow writing the entire filesystem
      --full-network          Allow full network access
      --writable-root <path>  Add a writable root (repeatable)
      --env <key=value>       Set a child environment variable (repeatable)
      --debug                 Print orchestrator trace to stderr

Examples:
  sandboxrun echo hello
  sandboxrun --full-disk-read --writable-root . -- npm test
  sandboxrun --sandbox=seatbelt --full-disk-read -- cat /etc/hosts`

func printUsage(out io.Writer) {
	fprintln(out, usageHelp)
}

func fprintln(out io.Writer, a ...any) {
	_, _ = fmt.Fprintln(out, a...)
}

func fprintf(out io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(out, format, a...)
}

func fprintError(out io.Writer, err error) {
	fprintln(out, executableName+": error:", err)
}

func formatVersion() string {
	if version == "source" {
		return fmt.Sprintf("%s (built from source, %s)", executableName, date)
	}

	return fmt.Sprintf("%s %s (%s, %s)", executableName, version, commit, date)
}
