// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import (
	"fmt"
	"slices"
)

const (
	// ModeSection reads the boot code from a section of the ELF artifact.
	ModeSection Mode = "section"
	// ModeObjcopy converts the ELF artifact into a flat binary with
	// objcopy.
	ModeObjcopy Mode = "objcopy"
	// ModeRaw uses the artifact as it is. It must be a flat binary already.
	ModeRaw Mode = "raw"
)

// Mode selects the [Extractor] implementation.
type Mode string

func (m *Mode) isKnown() bool {
	knownModes := []Mode{
		ModeSection,
		ModeObjcopy,
		ModeRaw,
	}

	return slices.Contains(knownModes, *m)
}

// String implements [fmt.Stringer].
func (m *Mode) String() string {
	if !m.isKnown() {
		return ""
	}

	return string(*m)
}

// MarshalText implements [encoding.TextMarshaler].
func (m Mode) MarshalText() ([]byte, error) {
	s := m.String()
	if s == "" {
		return nil, ErrModeInvalid
	}

	return []byte(s), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *Mode) UnmarshalText(text []byte) error {
	mode := Mode(text)

	if !mode.isKnown() {
		return fmt.Errorf("%w: %s", ErrModeInvalid, text)
	}

	*m = mode

	return nil
}
