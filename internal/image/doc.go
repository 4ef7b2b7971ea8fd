// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package image composes the bootable disk image.
//
// An image is laid out as:
//
//	[boot code][kernel header][kernel][zero padding]
//
// The kernel header is one sector. Its first four bytes hold the kernel size
// as little endian uint32. Padding aligns the kernel to the next sector
// boundary, measured from the start of the header. So the whole image is
// sector aligned only if the boot code is.
package image
