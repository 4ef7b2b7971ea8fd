// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// HeaderSize is the size of the kernel header.
	HeaderSize = SectorSize

	// MaxKernelSize is the largest kernel size the header can describe.
	MaxKernelSize = math.MaxUint32

	kernelSizeOffset = 0
	reservedOffset   = 8
)

// Header is the kernel header placed between boot code and kernel.
//
// Only the kernel size carries information. All other bytes are zero,
// including the reserved field at offset 8.
type Header struct {
	KernelSize uint32
	// Reserved is the reserved field as decoded by [Header.UnmarshalBinary].
	// It is ignored by [Header.MarshalBinary].
	Reserved uint32
}

// NewHeader returns the [Header] for a kernel of the given size.
//
// It returns [ErrSizeOverflow] if the size exceeds [MaxKernelSize].
func NewHeader(kernelSize uint64) (Header, error) {
	err := CheckKernelSize(kernelSize)
	if err != nil {
		return Header{}, err
	}

	return Header{KernelSize: uint32(kernelSize)}, nil
}

// CheckKernelSize returns [ErrSizeOverflow] if the size does not fit into the
// header's size field.
func CheckKernelSize(size uint64) error {
	if size > MaxKernelSize {
		return fmt.Errorf("%w: %d > %d", ErrSizeOverflow, size, uint64(MaxKernelSize))
	}

	return nil
}

// MarshalBinary implements [encoding.BinaryMarshaler]. It always returns
// [HeaderSize] bytes with only the kernel size set.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[kernelSizeOffset:], h.KernelSize)

	return buf, nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler].
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d",
			ErrShortImage, HeaderSize, len(data))
	}

	h.KernelSize = binary.LittleEndian.Uint32(data[kernelSizeOffset:])
	h.Reserved = binary.LittleEndian.Uint32(data[reservedOffset:])

	return nil
}

// ReadHeader decodes the [Header] of an image whose boot code has the given
// length.
func ReadHeader(image []byte, bootCodeLen int) (Header, error) {
	var hdr Header

	if bootCodeLen < 0 || bootCodeLen > len(image) {
		return hdr, fmt.Errorf("%w: boot code length %d of %d bytes",
			ErrShortImage, bootCodeLen, len(image))
	}

	err := hdr.UnmarshalBinary(image[bootCodeLen:])
	if err != nil {
		return hdr, err
	}

	return hdr, nil
}
