//go:build unix

package sandboxexec

import (
	"io"
	"os"
	"testing"
)

func Test_SpawnChild_Closes_Stdin_DevNull_After_Start(t *testing.T) {
	t.Parallel()

	child, err := spawnChild(spawnSpec{
		program: "/bin/echo",
		args:    []string{"hi"},
		cwd:     t.TempDir(),
		stdio:   StdioRedirectForTool,
	})
	if err != nil {
		t.Fatalf("spawnChild: %v", err)
	}

	if child.stdin != nil {
		t.Fatalf("expected stdin devnull file to be closed and cleared after Start, got %v", child.stdin)
	}

	_, _ = io.Copy(io.Discard, child.stdout)
	_, _ = io.Copy(io.Discard, child.stderr)
	_ = child.cmd.Wait()
}

func Test_SpawnChild_Does_Not_Leak_Stdin_Fd_Across_Many_Runs(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat("/proc/self/fd"); err != nil {
		t.Skip("no /proc/self/fd on this platform")
	}

	countOpenFDs := func() int {
		entries, err := os.ReadDir("/proc/self/fd")
		if err != nil {
			t.Fatalf("ReadDir /proc/self/fd: %v", err)
		}

		return len(entries)
	}

	before := countOpenFDs()

	for range 50 {
		child, err := spawnChild(spawnSpec{
			program: "/bin/echo",
			args:    []string{"hi"},
			cwd:     t.TempDir(),
			stdio:   StdioRedirectForTool,
		})
		if err != nil {
			t.Fatalf("spawnChild: %v", err)
		}

		_, _ = io.Copy(io.Discard, child.stdout)
		_, _ = io.Copy(io.Discard, child.stderr)
		_ = child.cmd.Wait()
	}

	after := countOpenFDs()

	// A handful of fds of slack is fine (GC timing, pipe buffering); a
	// leaked /dev/null per spawn would show up as +50.
	if after-before > 10 {
		t.Fatalf("suspected fd leak: had %d fds before, %d after 50 spawns", before, after)
	}
}
