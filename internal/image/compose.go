// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import (
	"bytes"
	"fmt"
	"io"
)

// Layout describes the sizes of the parts of a composed image.
type Layout struct {
	BootCodeSize uint64
	KernelSize   uint64
	PaddingSize  uint64
}

// NewLayout returns the [Layout] for the given boot code and kernel sizes.
//
// It returns [ErrSizeOverflow] if the kernel is too big and
// [ErrEmptyBootCode] if there is no boot code.
func NewLayout(bootCodeSize, kernelSize uint64) (Layout, error) {
	if bootCodeSize == 0 {
		return Layout{}, ErrEmptyBootCode
	}

	err := CheckKernelSize(kernelSize)
	if err != nil {
		return Layout{}, err
	}

	return Layout{
		BootCodeSize: bootCodeSize,
		KernelSize:   kernelSize,
		PaddingSize:  PadLen(kernelSize, SectorSize),
	}, nil
}

// HeaderOffset returns the offset of the kernel header in the image.
func (l Layout) HeaderOffset() uint64 {
	return l.BootCodeSize
}

// KernelOffset returns the offset of the kernel in the image.
func (l Layout) KernelOffset() uint64 {
	return l.BootCodeSize + HeaderSize
}

// Size returns the total size of the image.
func (l Layout) Size() uint64 {
	return l.KernelOffset() + l.KernelSize + l.PaddingSize
}

// Compose writes the image for the given boot code and kernel to w.
func Compose(w io.Writer, bootCode, kernel []byte) (Layout, error) {
	return ComposeFrom(w, bootCode, bytes.NewReader(kernel), uint64(len(kernel)))
}

// ComposeFrom writes the image for the given boot code to w. The kernel is
// read from the kernel reader which must provide exactly kernelSize bytes.
//
// Sizes are checked before anything is written, so w stays untouched if they
// are invalid. All errors occurring during writing are of type [*IOError].
func ComposeFrom(
	w io.Writer,
	bootCode []byte,
	kernel io.Reader,
	kernelSize uint64,
) (Layout, error) {
	layout, err := NewLayout(uint64(len(bootCode)), kernelSize)
	if err != nil {
		return Layout{}, err
	}

	// Size was checked by NewLayout already.
	hdr, _ := NewHeader(kernelSize)
	hdrBytes, _ := hdr.MarshalBinary()

	err = write(w, PartBootCode, bootCode)
	if err != nil {
		return layout, err
	}

	err = write(w, PartHeader, hdrBytes)
	if err != nil {
		return layout, err
	}

	n, err := io.CopyN(w, kernel, int64(kernelSize))
	if err != nil {
		return layout, &IOError{
			Part: PartKernel,
			Err:  fmt.Errorf("%d of %d bytes copied: %w", n, kernelSize, err),
		}
	}

	err = write(w, PartPadding, make([]byte, layout.PaddingSize))
	if err != nil {
		return layout, err
	}

	return layout, nil
}

func write(w io.Writer, part Part, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	_, err := w.Write(data)
	if err != nil {
		return &IOError{Part: part, Err: err}
	}

	return nil
}
