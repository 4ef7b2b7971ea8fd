// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"bytes"
	"maps"
	"slices"
	"testing"

	"github.com/cavaliergopher/cpio"
)

// BuildBundle returns a cpio archive that contains the given files as
// regular entries.
func BuildBundle(tb testing.TB, files map[string][]byte) []byte {
	tb.Helper()

	var buf bytes.Buffer

	writer := cpio.NewWriter(&buf)

	for _, name := range slices.Sorted(maps.Keys(files)) {
		data := files[name]

		err := writer.WriteHeader(&cpio.Header{
			Name: name,
			Mode: cpio.TypeReg | 0o644,
			Size: int64(len(data)),
		})
		if err != nil {
			tb.Fatalf("write header for %s: %v", name, err)
		}

		_, err = writer.Write(data)
		if err != nil {
			tb.Fatalf("write body for %s: %v", name, err)
		}
	}

	err := writer.Close()
	if err != nil {
		tb.Fatalf("close bundle: %v", err)
	}

	return buf.Bytes()
}
