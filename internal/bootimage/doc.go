// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bootimage builds a bootable disk image from a bootloader and a
// kernel artifact.
//
// A [Build] runs through fixed stages. The artifacts are waited for and loaded
// from an [artifact.Store], the boot code is extracted from the bootloader
// artifact by the configured [bootcode.Extractor], and the image is composed
// into the output file by [image.WriteFile]. Optionally, a BLAKE3 checksum file
// is written next to the image.
package bootimage
