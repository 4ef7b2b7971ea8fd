// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

// SectorSize is the storage block size images are aligned to.
const SectorSize = 512

// PadLen returns the number of bytes needed to extend n to the next multiple
// of block. It returns 0 if n is a multiple of block already.
//
// It panics if block is 0.
func PadLen(n, block uint64) uint64 {
	return (block - n%block) % block
}

// AlignBootCode returns the boot code zero padded to a multiple of
// [SectorSize]. The input is returned unchanged if it is aligned already.
func AlignBootCode(bootCode []byte) []byte {
	pad := PadLen(uint64(len(bootCode)), SectorSize)
	if pad == 0 {
		return bootCode
	}

	aligned := make([]byte, len(bootCode), len(bootCode)+int(pad))
	copy(aligned, bootCode)

	return append(aligned, make([]byte, pad)...)
}
