package sandboxexec

import (
	"encoding/json"
	"fmt"
)

// linuxHelperArg0 is the argv[0] the helper process is launched with. The
// helper dispatches on its own name for diagnostics/logging; it does not
// affect which executable actually runs (that is the helper path, passed to
// [spawnChild] as spawnSpec.program).
const linuxHelperArg0 = "sandbox-helper"

// linuxPolicyWire is the JSON schema handed to the external Linux sandbox
// helper. Field order here is also JSON key order (encoding/json marshals
// struct fields in declaration order), which combined with WritableRoots
// preserving [Policy.WritableRoots]'s order makes the encoding deterministic:
// the same Policy and cwd always marshal to the same bytes.
type linuxPolicyWire struct {
	FullDiskRead  bool     `json:"full_disk_read"`
	FullDiskWrite bool     `json:"full_disk_write"`
	FullNetwork   bool     `json:"full_network"`
	WritableRoots []string `json:"writable_roots,omitempty"`
}

// linuxHelperArgs builds the argv for the external Linux sandbox helper:
// `<cwd> <policy-json> -- <command...>`.
func linuxHelperArgs(command []string, policy Policy, cwd string) ([]string, error) {
	wire := linuxPolicyWire{
		FullDiskRead:  policy.FullDiskRead,
		FullDiskWrite: policy.FullDiskWrite,
		FullNetwork:   policy.FullNetwork,
		WritableRoots: policy.Writable(cwd),
	}

	encoded, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("sandboxexec: marshal linux sandbox policy: %w", err)
	}

	args := make([]string, 0, 3+len(command))
	args = append(args, cwd, string(encoded), "--")
	args = append(args, command...)

	return args, nil
}
