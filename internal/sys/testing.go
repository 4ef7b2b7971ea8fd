// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"testing"
)

// MustAbsPath returns the absolute path like [AbsolutePath] and fails the
// test on errors.
func MustAbsPath(tb testing.TB, path string) string {
	tb.Helper()

	abs, err := AbsolutePath(path)
	if err != nil {
		tb.Fatalf("failed to get absolute path %s: %v", path, err)
	}

	return abs
}
