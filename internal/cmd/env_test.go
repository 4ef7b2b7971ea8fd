// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd_test

import (
	"testing"
	"testing/fstest"

	"github.com/aibor/bootimage/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvArgs(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		output []string
	}{
		{
			name:   "empty",
			env:    "",
			output: []string{},
		},
		{
			name:   "multiple args",
			env:    "-kernel /boot/kernel  -debug",
			output: []string{"-kernel", "/boot/kernel", "-debug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOOTIMAGE_ARGS", tt.env)
			assert.Equal(t, tt.output, cmd.EnvArgs())
		})
	}
}

func TestLocalConfigArgs(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		expected []string
	}{
		{
			name:     "empty",
			content:  "",
			expected: []string{},
		},
		{
			name:     "single line",
			content:  "-kernel=target/kernel",
			expected: []string{"-kernel=target/kernel"},
		},
		{
			name:     "multiple lines",
			content:  "-kernel\ntarget/kernel\n\n  -checksum  \n",
			expected: []string{"-kernel", "target/kernel", "-checksum"},
		},
		{
			name:     "comments",
			content:  "# build outputs\n-kernel=k\n#-debug\n",
			expected: []string{"-kernel=k"},
		},
		{
			name:     "with env vars",
			content:  "-kernel=${TARGET}/kernel\n-output=$OUT.img\n-bootloader=${NOPE}/bl\n",
			env:      map[string]string{"TARGET": "/build", "OUT": "disk"},
			expected: []string{"-kernel=/build/kernel", "-output=disk.img", "-bootloader=/bl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFS := fstest.MapFS{
				"conf": &fstest.MapFile{
					Data: []byte(tt.content),
				},
			}

			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			content, err := cmd.LocalConfigArgs(testFS, "conf")
			require.NoError(t, err)

			assert.Equal(t, tt.expected, content)
		})
	}
}

func TestLocalConfigArgs_Missing(t *testing.T) {
	args, err := cmd.LocalConfigArgs(fstest.MapFS{}, ".bootimage-args")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestLocalConfigArgs_Directory(t *testing.T) {
	testFS := fstest.MapFS{
		"conf/file": &fstest.MapFile{},
	}

	_, err := cmd.LocalConfigArgs(testFS, "conf")
	require.Error(t, err)
}

func TestMergedArgs(t *testing.T) {
	testFS := fstest.MapFS{
		".bootimage-args": &fstest.MapFile{
			Data: []byte("-kernel=/local/kernel\n-checksum\n"),
		},
	}

	t.Setenv("BOOTIMAGE_ARGS", "-kernel=/env/kernel -debug")

	args, err := cmd.MergedArgs(
		[]string{"-kernel=/cli/kernel"},
		testFS,
		".bootimage-args",
	)
	require.NoError(t, err)

	expected := []string{
		"-kernel=/local/kernel",
		"-checksum",
		"-kernel=/env/kernel",
		"-debug",
		"-kernel=/cli/kernel",
	}
	assert.Equal(t, expected, args)
}
