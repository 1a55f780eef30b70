package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/nextlevelbuilder/sandboxrun/sandboxexec"
)

// PolicyFile is the on-disk shape of a --policy-file. Both .json and .jsonc
// are accepted: the file is run through hujson.Standardize first, so
// comments and trailing commas are tolerated the same way agent-sandbox's
// config files are.
type PolicyFile struct {
	FullDiskRead  *bool    `json:"fullDiskRead,omitempty"`
	FullDiskWrite *bool    `json:"fullDiskWrite,omitempty"`
	FullNetwork   *bool    `json:"fullNetwork,omitempty"`
	WritableRoots []string `json:"writableRoots,omitempty"`

	// Sandbox names the variant to use when --sandbox isn't passed on the
	// command line: "none", "seatbelt", or "linux-helper".
	Sandbox string `json:"sandbox,omitempty"`

	// HelperPath is the linux-helper executable, used when Sandbox ==
	// "linux-helper" and --helper-path isn't passed.
	HelperPath string `json:"helperPath,omitempty"`
}

// loadPolicyFile reads and parses a JSON/JSONC policy file.
func loadPolicyFile(path string) (PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PolicyFile{}, fmt.Errorf("reading policy file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return PolicyFile{}, fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	var pf PolicyFile

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&pf); err != nil {
		return PolicyFile{}, fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	return pf, nil
}

// applyTo merges pf into base, letting any already-true/non-empty field in
// base (set from CLI flags) win. A boolean flag that is false in base,
// whether left unset or passed as =false, does not override the file.
func (pf PolicyFile) applyTo(base sandboxexec.Policy) sandboxexec.Policy {
	out := base

	if pf.FullDiskRead != nil && !out.FullDiskRead {
		out.FullDiskRead = *pf.FullDiskRead
	}

	if pf.FullDiskWrite != nil && !out.FullDiskWrite {
		out.FullDiskWrite = *pf.FullDiskWrite
	}

	if pf.FullNetwork != nil && !out.FullNetwork {
		out.FullNetwork = *pf.FullNetwork
	}

	if len(out.WritableRoots) == 0 && len(pf.WritableRoots) > 0 {
		out.WritableRoots = pf.WritableRoots
	}

	return out
}
