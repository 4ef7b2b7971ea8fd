// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import (
	"bytes"
	"debug/elf"
	"fmt"
)

// Header is the subset of the ELF file header relevant for locating boot code.
type Header struct {
	Class   elf.Class
	Data    elf.Data
	Machine elf.Machine
}

// Section is a named byte range of an ELF artifact.
type Section struct {
	Name   string
	Type   elf.SectionType
	Offset uint64
	Size   uint64
}

// ElfImage is a parsed view over the bytes of an ELF artifact.
//
// Sections only carry offsets into the original bytes. Data returned by
// [ElfImage.SectionData] shares memory with the artifact.
type ElfImage struct {
	Header   Header
	Sections []Section

	raw []byte
}

// ParseELF validates the ELF identification of raw and reads its section
// table.
//
// All errors are of type [*FormatError].
func ParseELF(raw []byte) (*ElfImage, error) {
	err := sanityCheck(raw)
	if err != nil {
		return nil, err
	}

	file, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, &FormatError{Reason: "parse", Err: err}
	}
	defer file.Close()

	img := &ElfImage{
		Header: Header{
			Class:   file.Class,
			Data:    file.Data,
			Machine: file.Machine,
		},
		Sections: make([]Section, 0, len(file.Sections)),
		raw:      raw,
	}

	for _, s := range file.Sections {
		img.Sections = append(img.Sections, Section{
			Name:   s.Name,
			Type:   s.Type,
			Offset: s.Offset,
			Size:   s.FileSize,
		})
	}

	return img, nil
}

// sanityCheck checks magic number, class and data encoding of the ELF
// identification bytes.
func sanityCheck(raw []byte) error {
	if len(raw) < elf.EI_NIDENT || string(raw[:len(elf.ELFMAG)]) != elf.ELFMAG {
		return &FormatError{Reason: "magic", Err: ErrNotELF}
	}

	switch class := elf.Class(raw[elf.EI_CLASS]); class {
	case elf.ELFCLASS32, elf.ELFCLASS64:
	default:
		return &FormatError{
			Reason: "class",
			Err:    fmt.Errorf("%w: %s", ErrUnsupportedClass, class),
		}
	}

	switch data := elf.Data(raw[elf.EI_DATA]); data {
	case elf.ELFDATA2LSB, elf.ELFDATA2MSB:
	default:
		return &FormatError{
			Reason: "endianness",
			Err:    fmt.Errorf("%w: %s", ErrUnsupportedEndianness, data),
		}
	}

	return nil
}

// Section returns the first section with exactly the given name.
func (e *ElfImage) Section(name string) (Section, bool) {
	for _, s := range e.Sections {
		if s.Name == name {
			return s, true
		}
	}

	return Section{}, false
}

// SectionData returns the raw bytes of the given section without copying.
func (e *ElfImage) SectionData(s Section) ([]byte, error) {
	if s.Type == elf.SHT_NOBITS {
		return nil, &FormatError{Reason: "section " + s.Name, Err: ErrSectionNoBits}
	}

	size := uint64(len(e.raw))
	if s.Offset > size || s.Size > size-s.Offset {
		return nil, &FormatError{
			Reason: "section " + s.Name,
			Err: fmt.Errorf(
				"%w: [%d:%d] of %d bytes",
				ErrSectionOutOfBounds,
				s.Offset,
				s.Offset+s.Size,
				size,
			),
		}
	}

	return e.raw[s.Offset : s.Offset+s.Size : s.Offset+s.Size], nil
}
