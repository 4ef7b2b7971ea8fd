// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"debug/elf"
	"fmt"
)

// Arch is a boot code target architecture.
type Arch string

// Supported boot code architectures.
const (
	AMD64 Arch = "amd64"
	I386  Arch = "386"
)

// ArchForMachine returns the [Arch] matching the given ELF machine type.
func ArchForMachine(machine elf.Machine) (Arch, error) {
	//nolint:exhaustive
	switch machine {
	case elf.EM_X86_64:
		return AMD64, nil
	case elf.EM_386:
		return I386, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrMachineNotSupported, machine)
	}
}

// String implements [fmt.Stringer].
func (a *Arch) String() string {
	return string(*a)
}

// MarshalText implements [encoding.TextMarshaler].
func (a Arch) MarshalText() ([]byte, error) {
	if !a.isKnown() {
		return nil, ErrArchNotSupported
	}

	return []byte(a), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Arch) UnmarshalText(text []byte) error {
	arch := Arch(text)
	if !arch.isKnown() {
		return fmt.Errorf("%w: %s", ErrArchNotSupported, text)
	}

	*a = arch

	return nil
}

// BFDArchitecture returns the binutils architecture name as used by
// objcopy's --binary-architecture option.
func (a Arch) BFDArchitecture() (string, error) {
	switch a {
	case AMD64:
		return "i386:x86-64", nil
	case I386:
		return "i386", nil
	default:
		return "", ErrArchNotSupported
	}
}

// BFDTarget returns the binutils ELF input target name, as used by objcopy's
// --input-target option.
func (a Arch) BFDTarget() (string, error) {
	switch a {
	case AMD64:
		return "elf64-x86-64", nil
	case I386:
		return "elf32-i386", nil
	default:
		return "", ErrArchNotSupported
	}
}

func (a Arch) isKnown() bool {
	return a == AMD64 || a == I386
}
