package sandboxexec

import (
	_ "embed"
	"fmt"
	"strings"
)

// seatbeltExecutable is the trusted, hardcoded absolute path to macOS's
// sandbox-exec utility. It is never looked up via PATH: if an attacker can
// overwrite /usr/bin/sandbox-exec, the system already has a far larger
// problem than this package, so resolving it via PATH would only add a
// spoofing opportunity for no real defense.
const seatbeltExecutable = "/usr/bin/sandbox-exec"

//go:embed policyassets/seatbelt_base.sbpl
var seatbeltBasePolicy string

// seatbeltArgs builds the argv for sandbox-exec: `-p <policy> <-Dname=value
// bindings...> -- <command...>`.
//
// The policy text is the base policy followed by, in fixed order: a
// full-read fragment, a full-write-or-writable-roots fragment, and a
// full-network fragment. Fixed order matters for determinism (the
// "Policy-text stability" property): the same Policy and cwd must always
// produce byte-identical argv.
func seatbeltArgs(command []string, policy Policy, cwd string) []string {
	writePolicy, bindings := seatbeltWritePolicy(policy, cwd)
	readPolicy := seatbeltReadPolicy(policy)
	networkPolicy := seatbeltNetworkPolicy(policy)

	fullPolicy := strings.Join([]string{seatbeltBasePolicy, readPolicy, writePolicy, networkPolicy}, "\n")

	args := make([]string, 0, 2+len(bindings)+1+len(command))
	args = append(args, "-p", fullPolicy)
	args = append(args, bindings...)
	args = append(args, "--")
	args = append(args, command...)

	return args
}

func seatbeltReadPolicy(policy Policy) string {
	if policy.FullDiskRead {
		return "; allow read-only file operations\n(allow file-read*)"
	}

	return ""
}

func seatbeltNetworkPolicy(policy Policy) string {
	if policy.FullNetwork {
		return "(allow network-outbound)\n(allow network-inbound)\n(allow system-socket)"
	}

	return ""
}

// seatbeltWritePolicy returns the file-write policy fragment plus the
// `-D<name>=<value>` parameter bindings it references.
//
// When neither FullDiskWrite nor any writable roots apply, both return
// values are empty: the base policy's `(deny default)` then denies all
// writes. This is intentional (spec.md §9 Open Questions) and must not be
// "fixed" by granting an implicit default.
func seatbeltWritePolicy(policy Policy, cwd string) (fragment string, bindings []string) {
	if policy.FullDiskWrite {
		// More permissive than a bare `(allow file-write*)`: matches every
		// absolute path regardless of how the kernel resolves it internally.
		return `(allow file-write* (regex #"^/"))`, nil
	}

	roots := policy.Writable(cwd)
	if len(roots) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(roots))
	bindings = make([]string, 0, len(roots))

	for i, root := range roots {
		name := fmt.Sprintf("WRITABLE_ROOT_%d", i)
		clauses = append(clauses, fmt.Sprintf(`(subpath (param "%s"))`, name))
		bindings = append(bindings, fmt.Sprintf("-D%s=%s", name, root))
	}

	fragment = fmt.Sprintf("(allow file-write*\n%s\n)", strings.Join(clauses, " "))

	return fragment, bindings
}
