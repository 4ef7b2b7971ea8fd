// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootimage

import (
	"time"

	"github.com/aibor/bootimage/internal/artifact"
	"github.com/aibor/bootimage/internal/bootcode"
)

// Spec describes a single [Build].
type Spec struct {
	// KernelPath is the path of the kernel artifact. Relative paths are
	// resolved against the working directory unless a custom Store is set.
	KernelPath string
	// BootloaderPath is the path of the bootloader artifact. It is resolved
	// like KernelPath.
	BootloaderPath string
	// OutputPath is the path the image is written to. If empty, it is derived
	// from KernelPath by [image.OutputPath].
	OutputPath string

	// Mode selects the boot code extractor.
	Mode bootcode.Mode
	// Extractor holds the extractor settings.
	Extractor bootcode.Options

	// Wait is the time to wait for the artifacts to show up in the store.
	// Artifacts are not waited for if zero.
	Wait time.Duration
	// WaitInterval is the polling interval while waiting. Defaults to
	// [artifact.DefaultWaitInterval].
	WaitInterval time.Duration

	// AlignBootCode pads the boot code to a multiple of [image.SectorSize].
	AlignBootCode bool
	// Checksum enables writing a BLAKE3 checksum file next to the image.
	Checksum bool

	// Store the artifacts are read from. Defaults to the host file system.
	Store artifact.Store
}

func (s *Spec) store() artifact.Store {
	if s.Store == nil {
		return artifact.NewFileStore()
	}

	return s.Store
}

func (s *Spec) waitInterval() time.Duration {
	if s.WaitInterval <= 0 {
		return artifact.DefaultWaitInterval
	}

	return s.WaitInterval
}
