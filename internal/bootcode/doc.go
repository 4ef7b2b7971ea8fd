// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bootcode extracts the flat boot code from a bootloader build
// artifact.
//
// Bootloaders are packaged in different ways depending on the build setup. An
// [Extractor] hides the packaging from the caller. [SectionExtractor] reads
// the code from a named section of an ELF object, [ObjcopyExtractor]
// delegates the flattening to objcopy and [RawExtractor] takes flat binaries
// as they are. Use [New] to get the extractor for a configured [Mode].
package bootcode
