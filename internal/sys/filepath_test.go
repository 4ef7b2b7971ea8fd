// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/bootimage/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsolutePath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       string
		expected    string
		expectedErr error
	}{
		{
			name:        "empty",
			expectedErr: sys.ErrEmptyPath,
		},
		{
			name:     "absolute",
			input:    "/boot/kernel",
			expected: "/boot/kernel",
		},
		{
			name:     "relative",
			input:    "target/kernel",
			expected: filepath.Join(cwd, "target/kernel"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := sys.AbsolutePath(tt.input)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestMustAbsPath(t *testing.T) {
	assert.Equal(t, "/x", sys.MustAbsPath(t, "/x"))
	assert.Equal(t, "/x", sys.MustAbsPath(t, "/y/../x/"))
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		path     string
		expected string
	}{
		{
			name: "empty",
			dir:  "/etc",
		},
		{
			name:     "absolute",
			dir:      "/etc",
			path:     "/boot/kernel",
			expected: "/boot/kernel",
		},
		{
			name:     "relative",
			dir:      "/work",
			path:     "target/kernel",
			expected: "/work/target/kernel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sys.ResolvePath(tt.dir, tt.path))
		})
	}
}
