// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotELF is returned if the artifact does not start with the ELF
	// magic number.
	ErrNotELF = errors.New("not an ELF file")

	// ErrUnsupportedClass is returned if the ELF class is neither 32 nor 64
	// bit.
	ErrUnsupportedClass = errors.New("unsupported ELF class")

	// ErrUnsupportedEndianness is returned if the ELF data encoding is
	// neither little nor big endian.
	ErrUnsupportedEndianness = errors.New("unsupported ELF data encoding")

	// ErrSectionNotFound is returned if no section matches the requested
	// name.
	ErrSectionNotFound = errors.New("section not found")

	// ErrSectionNoBits is returned if the requested section occupies no
	// space in the file.
	ErrSectionNoBits = errors.New("section has no file data")

	// ErrSectionOutOfBounds is returned if a section's byte range exceeds
	// the artifact.
	ErrSectionOutOfBounds = errors.New("section data out of bounds")

	// ErrEmptyBootCode is returned if the extracted boot code has no bytes.
	ErrEmptyBootCode = errors.New("boot code is empty")

	// ErrModeInvalid is returned for unknown extractor modes.
	ErrModeInvalid = errors.New("unknown extractor mode")
)

// FormatError is returned if the bootloader artifact is malformed or does not
// contain boot code where it is expected.
type FormatError struct {
	Reason string
	Err    error
}

// Error implements the [error] interface.
func (e *FormatError) Error() string {
	msg := "format error"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*FormatError) Is(other error) bool {
	_, ok := other.(*FormatError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// ObjcopyExecError is returned if the objcopy command fails.
type ObjcopyExecError struct {
	Err    error
	Stderr string
}

// Error implements the [error] interface.
func (e *ObjcopyExecError) Error() string {
	msg := fmt.Sprintf("objcopy: %v", e.Err)

	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (*ObjcopyExecError) Is(other error) bool {
	_, ok := other.(*ObjcopyExecError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *ObjcopyExecError) Unwrap() error {
	return e.Err
}
