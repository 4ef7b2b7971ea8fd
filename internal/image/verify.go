// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import (
	"bytes"
	"fmt"
)

// Verify checks that image is exactly the composition of the given boot code
// and kernel.
//
// It returns an error wrapping [ErrLayoutMismatch] naming the first
// deviating part.
func Verify(image, bootCode, kernel []byte) error {
	layout, err := NewLayout(uint64(len(bootCode)), uint64(len(kernel)))
	if err != nil {
		return err
	}

	if uint64(len(image)) != layout.Size() {
		return fmt.Errorf("%w: size is %d, expected %d",
			ErrLayoutMismatch, len(image), layout.Size())
	}

	mismatch := func(part Part) error {
		return fmt.Errorf("%w: %s", ErrLayoutMismatch, part)
	}

	if !bytes.Equal(image[:layout.HeaderOffset()], bootCode) {
		return mismatch(PartBootCode)
	}

	hdr, err := ReadHeader(image, len(bootCode))
	if err != nil {
		return err
	}

	if uint64(hdr.KernelSize) != layout.KernelSize || hdr.Reserved != 0 {
		return mismatch(PartHeader)
	}

	hdrBytes := image[layout.HeaderOffset():layout.KernelOffset()]
	if !isZero(hdrBytes[4:]) {
		return mismatch(PartHeader)
	}

	kernelEnd := layout.KernelOffset() + layout.KernelSize
	if !bytes.Equal(image[layout.KernelOffset():kernelEnd], kernel) {
		return mismatch(PartKernel)
	}

	if !isZero(image[kernelEnd:]) {
		return mismatch(PartPadding)
	}

	return nil
}

func isZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}

	return true
}
