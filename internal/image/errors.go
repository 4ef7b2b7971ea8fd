// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import "errors"

var (
	// ErrSizeOverflow is returned if the kernel does not fit into the
	// header's 32 bit size field.
	ErrSizeOverflow = errors.New("kernel size exceeds 32 bit size field")

	// ErrEmptyBootCode is returned if no boot code is given.
	ErrEmptyBootCode = errors.New("boot code must not be empty")

	// ErrShortImage is returned if an image is too short to contain the
	// expected content.
	ErrShortImage = errors.New("image too short")

	// ErrLayoutMismatch is returned if an image does not match the expected
	// layout.
	ErrLayoutMismatch = errors.New("image layout mismatch")
)

// Part is a section of the image layout.
type Part string

// Image parts in the order they are written.
const (
	PartBootCode Part = "boot code"
	PartHeader   Part = "header"
	PartKernel   Part = "kernel"
	PartPadding  Part = "padding"
	PartFile     Part = "file"
)

// IOError wraps any error reading or writing image data.
type IOError struct {
	Part Part
	Err  error
}

// Error implements the [error] interface.
func (e *IOError) Error() string {
	return "write " + string(e.Part) + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*IOError) Is(other error) bool {
	_, ok := other.(*IOError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *IOError) Unwrap() error {
	return e.Err
}
