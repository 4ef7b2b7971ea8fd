// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux

package image

// syncDir is a no-op. Syncing directories is not portable.
func syncDir(string) error {
	return nil
}
