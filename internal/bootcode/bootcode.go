// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import (
	"context"

	"github.com/aibor/bootimage/internal/sys"
)

// BootCode is the flat machine code that is placed at the very start of the
// image. It is never empty.
type BootCode []byte

// Extractor yields the [BootCode] from a bootloader artifact.
type Extractor interface {
	Extract(ctx context.Context, artifact []byte) (BootCode, error)
}

// Options are the settings for the [Extractor] returned by [New]. Fields not
// relevant for the selected [Mode] are ignored.
type Options struct {
	// Section is the name of the ELF section holding the boot code. Defaults
	// to [DefaultSection].
	Section string
	// Objcopy is the objcopy executable. Defaults to "objcopy".
	Objcopy string
	// Arch is the boot code architecture passed to objcopy. If empty, it is
	// derived from the ELF machine type of the artifact.
	Arch sys.Arch
}

// New returns the [Extractor] for the given [Mode].
//
// The empty mode is treated as [ModeSection].
func New(mode Mode, opts Options) (Extractor, error) {
	switch mode {
	case ModeSection, "":
		return &SectionExtractor{Name: opts.Section}, nil
	case ModeObjcopy:
		return &ObjcopyExtractor{
			Executable: opts.Objcopy,
			Arch:       opts.Arch,
		}, nil
	case ModeRaw:
		return &RawExtractor{}, nil
	default:
		return nil, ErrModeInvalid
	}
}
