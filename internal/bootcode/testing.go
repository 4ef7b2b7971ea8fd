// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"
)

// TestSection is a section added by [BuildELF].
type TestSection struct {
	Name  string
	Type  elf.SectionType
	Flags elf.SectionFlag
	Addr  uint64
	Data  []byte
}

// TestELF describes a minimal ELF object for [BuildELF]. Zero values default
// to a little endian 64 bit x86-64 executable.
type TestELF struct {
	Class    elf.Class
	Data     elf.Data
	Machine  elf.Machine
	Sections []TestSection
}

// BuildELF builds an ELF object with a section header table but without
// program headers. Section data is laid out right after the file header in
// the given order followed by the section name string table and the section
// header table.
func BuildELF(tb testing.TB, spec TestELF) []byte {
	tb.Helper()

	if spec.Class == elf.ELFCLASSNONE {
		spec.Class = elf.ELFCLASS64
	}

	if spec.Data == elf.ELFDATANONE {
		spec.Data = elf.ELFDATA2LSB
	}

	if spec.Machine == elf.EM_NONE {
		spec.Machine = elf.EM_X86_64
	}

	var order binary.ByteOrder = binary.LittleEndian
	if spec.Data == elf.ELFDATA2MSB {
		order = binary.BigEndian
	}

	ehsize, shentsize := 64, 64
	if spec.Class == elf.ELFCLASS32 {
		ehsize, shentsize = 52, 40
	}

	type sectionHeader struct {
		name, typ                        uint32
		flags, addr, offset, size, align uint64
	}

	var (
		data     bytes.Buffer
		strtab   = []byte{0}
		sections = []sectionHeader{{}}
	)

	addName := func(name string) uint32 {
		idx := uint32(len(strtab))
		strtab = append(strtab, name...)
		strtab = append(strtab, 0)

		return idx
	}

	for _, s := range spec.Sections {
		typ := s.Type
		if typ == elf.SHT_NULL {
			typ = elf.SHT_PROGBITS
		}

		hdr := sectionHeader{
			name:   addName(s.Name),
			typ:    uint32(typ),
			flags:  uint64(s.Flags),
			addr:   s.Addr,
			offset: uint64(ehsize + data.Len()),
			size:   uint64(len(s.Data)),
			align:  1,
		}

		if typ != elf.SHT_NOBITS {
			data.Write(s.Data)
		}

		sections = append(sections, hdr)
	}

	shstrndx := len(sections)
	shstrtabName := addName(".shstrtab")
	sections = append(sections, sectionHeader{
		name:   shstrtabName,
		typ:    uint32(elf.SHT_STRTAB),
		offset: uint64(ehsize + data.Len()),
		size:   uint64(len(strtab)),
		align:  1,
	})
	data.Write(strtab)

	for data.Len()%8 != 0 {
		data.WriteByte(0)
	}

	shoff := uint64(ehsize + data.Len())

	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(spec.Class)
	ident[elf.EI_DATA] = byte(spec.Data)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	var out bytes.Buffer

	write := func(v any) {
		tb.Helper()

		err := binary.Write(&out, order, v)
		if err != nil {
			tb.Fatalf("write ELF: %v", err)
		}
	}

	if spec.Class == elf.ELFCLASS32 {
		write(elf.Header32{
			Ident:     ident,
			Type:      uint16(elf.ET_EXEC),
			Machine:   uint16(spec.Machine),
			Version:   uint32(elf.EV_CURRENT),
			Shoff:     uint32(shoff),
			Ehsize:    uint16(ehsize),
			Shentsize: uint16(shentsize),
			Shnum:     uint16(len(sections)),
			Shstrndx:  uint16(shstrndx),
		})
	} else {
		write(elf.Header64{
			Ident:     ident,
			Type:      uint16(elf.ET_EXEC),
			Machine:   uint16(spec.Machine),
			Version:   uint32(elf.EV_CURRENT),
			Shoff:     shoff,
			Ehsize:    uint16(ehsize),
			Shentsize: uint16(shentsize),
			Shnum:     uint16(len(sections)),
			Shstrndx:  uint16(shstrndx),
		})
	}

	out.Write(data.Bytes())

	for _, s := range sections {
		if spec.Class == elf.ELFCLASS32 {
			write(elf.Section32{
				Name:      s.name,
				Type:      s.typ,
				Flags:     uint32(s.flags),
				Addr:      uint32(s.addr),
				Off:       uint32(s.offset),
				Size:      uint32(s.size),
				Addralign: uint32(s.align),
			})
		} else {
			write(elf.Section64{
				Name:      s.name,
				Type:      s.typ,
				Flags:     s.flags,
				Addr:      s.addr,
				Off:       s.offset,
				Size:      s.size,
				Addralign: s.align,
			})
		}
	}

	return out.Bytes()
}
