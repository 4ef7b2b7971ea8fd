// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import (
	"context"
	"log/slog"
)

// DefaultSection is the name of the ELF section the bootloader build places
// its boot code in.
const DefaultSection = ".bootloader"

var _ Extractor = (*SectionExtractor)(nil)

// SectionExtractor is an [Extractor] that reads the boot code from a section
// of an ELF artifact.
type SectionExtractor struct {
	// Name of the section. Defaults to [DefaultSection].
	Name string
}

// Extract returns the raw data of the section. The data is returned as is, so
// it shares memory with artifact.
func (x *SectionExtractor) Extract(
	_ context.Context,
	artifact []byte,
) (BootCode, error) {
	name := x.Name
	if name == "" {
		name = DefaultSection
	}

	img, err := ParseELF(artifact)
	if err != nil {
		return nil, err
	}

	slog.Debug("Parsed bootloader ELF",
		slog.String("class", img.Header.Class.String()),
		slog.String("data", img.Header.Data.String()),
		slog.String("machine", img.Header.Machine.String()),
		slog.Int("sections", len(img.Sections)),
	)

	section, found := img.Section(name)
	if !found {
		return nil, &FormatError{Reason: "section " + name, Err: ErrSectionNotFound}
	}

	data, err := img.SectionData(section)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, &FormatError{Reason: "section " + name, Err: ErrEmptyBootCode}
	}

	slog.Debug("Found boot code section",
		slog.String("name", name),
		slog.Uint64("offset", section.Offset),
		slog.Uint64("size", section.Size),
	)

	return BootCode(data), nil
}
