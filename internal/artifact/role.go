// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

// Role names what an artifact is used for.
type Role string

const (
	RoleBootloader Role = "bootloader"
	RoleKernel     Role = "kernel"
	RoleBundle     Role = "bundle"
)

// String implements [fmt.Stringer].
func (r Role) String() string {
	return string(r)
}

// Ref references an artifact by its role and path.
type Ref struct {
	Role Role
	Path string
}

// Artifact is the content of a build output.
//
// Data must be treated as read only.
type Artifact struct {
	Role Role
	Path string
	Data []byte
}

// Size returns the size of the artifact data.
func (a Artifact) Size() uint64 {
	return uint64(len(a.Data))
}
