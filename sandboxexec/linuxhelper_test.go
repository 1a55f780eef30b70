package sandboxexec

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_LinuxHelperArgs_Is_Deterministic_For_Same_Inputs(t *testing.T) {
	t.Parallel()

	policy := Policy{FullDiskRead: true, WritableRoots: []string{"a", "b"}}

	first, err := linuxHelperArgs([]string{"echo", "hi"}, policy, "/cwd")
	if err != nil {
		t.Fatalf("linuxHelperArgs: %v", err)
	}

	second, err := linuxHelperArgs([]string{"echo", "hi"}, policy, "/cwd")
	if err != nil {
		t.Fatalf("linuxHelperArgs: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("linuxHelperArgs not deterministic (-first +second):\n%s", diff)
	}
}

func Test_LinuxHelperArgs_Layout(t *testing.T) {
	t.Parallel()

	policy := Policy{FullDiskRead: true, FullNetwork: true, WritableRoots: []string{"out"}}

	args, err := linuxHelperArgs([]string{"npm", "test"}, policy, "/repo")
	if err != nil {
		t.Fatalf("linuxHelperArgs: %v", err)
	}

	if len(args) != 5 {
		t.Fatalf("expected cwd, json, --, npm, test; got %v", args)
	}

	if args[0] != "/repo" {
		t.Fatalf("expected cwd first, got %q", args[0])
	}

	var wire linuxPolicyWire
	if err := json.Unmarshal([]byte(args[1]), &wire); err != nil {
		t.Fatalf("unmarshal policy json: %v", err)
	}

	want := linuxPolicyWire{
		FullDiskRead:  true,
		FullNetwork:   true,
		WritableRoots: []string{"/repo/out"},
	}

	if diff := cmp.Diff(want, wire); diff != "" {
		t.Fatalf("policy mismatch (-want +got):\n%s", diff)
	}

	if args[2] != "--" || args[3] != "npm" || args[4] != "test" {
		t.Fatalf("expected [-- npm test] tail, got %v", args[2:])
	}
}

func Test_LinuxHelperArgs_Omits_WritableRoots_When_Empty(t *testing.T) {
	t.Parallel()

	args, err := linuxHelperArgs([]string{"true"}, Policy{}, "/repo")
	if err != nil {
		t.Fatalf("linuxHelperArgs: %v", err)
	}

	if !jsonHasNoKey(t, args[1], "writable_roots") {
		t.Fatalf("expected writable_roots omitted, got %q", args[1])
	}
}

func jsonHasNoKey(t *testing.T, encoded, key string) bool {
	t.Helper()

	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(encoded), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, present := m[key]

	return !present
}
