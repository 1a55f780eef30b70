package sandboxexec

import "path/filepath"

// Policy is an abstract, platform-independent description of what a
// sandboxed command is allowed to do on disk and on the network.
//
// Policy itself never touches the filesystem or the network; it is purely a
// capability description queried by the encoders ([seatbeltArgs],
// [linuxHelperArgs]) and by the child spawner, which reads
// [Policy.FullNetwork] to decide whether to set [NetworkDisabledEnvVar].
//
// The zero value denies everything: no disk read, no disk write, no
// network, no writable roots.
type Policy struct {
	// FullDiskRead grants read access to the entire filesystem.
	FullDiskRead bool

	// FullDiskWrite grants write access to the entire filesystem. When
	// false, only WritableRoots (expanded against the request's cwd) are
	// writable.
	FullDiskWrite bool

	// FullNetwork grants inbound, outbound, and raw-socket network access.
	FullNetwork bool

	// WritableRoots lists filesystem paths the command may write to when
	// FullDiskWrite is false. Entries may be absolute or relative; relative
	// entries are resolved against the cwd passed to [Policy.Writable].
	//
	// Order is significant and preserved: encoders index into this sequence
	// by position (e.g. seatbelt's WRITABLE_ROOT_<n> parameter names), so a
	// stable order is required for deterministic, byte-identical policy
	// encoding across repeated calls with the same inputs.
	WritableRoots []string
}

// Writable returns the absolute, ordered set of writable roots for cwd.
//
// Relative entries in p.WritableRoots are joined against cwd; absolute
// entries are passed through unchanged (still cleaned). Order is preserved
// from p.WritableRoots, never sorted, since downstream encoders depend on
// positional indices remaining stable.
func (p Policy) Writable(cwd string) []string {
	if len(p.WritableRoots) == 0 {
		return nil
	}

	out := make([]string, 0, len(p.WritableRoots))

	for _, root := range p.WritableRoots {
		if root == "" {
			continue
		}

		if filepath.IsAbs(root) {
			out = append(out, filepath.Clean(root))
		} else {
			out = append(out, filepath.Clean(filepath.Join(cwd, root)))
		}
	}

	return out
}

// PolicyReadOnly denies all writes and network access but allows reading the
// entire filesystem. Useful for read-only inspection tools (linters,
// formatters run with --check, search tools).
func PolicyReadOnly() Policy {
	return Policy{FullDiskRead: true}
}

// PolicyWorkdirWrite allows full disk read, full network, and write access
// restricted to cwd. This is the common "edit files in the repo, otherwise
// read-only" shape used for most agentic shell tool calls.
func PolicyWorkdirWrite(cwd string) Policy {
	return Policy{
		FullDiskRead:  true,
		FullNetwork:   true,
		WritableRoots: []string{cwd},
	}
}

// PolicyPermissive grants full disk read/write and full network access. It
// is equivalent to running unsandboxed from a filesystem/network
// perspective, but still goes through the same encoder/spawn/capper/
// classifier machinery as any other policy.
func PolicyPermissive() Policy {
	return Policy{FullDiskRead: true, FullDiskWrite: true, FullNetwork: true}
}
