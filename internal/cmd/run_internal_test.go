// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io/fs"
	"testing"

	"github.com/aibor/bootimage/internal/artifact"
	"github.com/aibor/bootimage/internal/bootcode"
	"github.com/aibor/bootimage/internal/bootimage"
	"github.com/aibor/bootimage/internal/image"
	"github.com/stretchr/testify/assert"
)

func TestHandleRunError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedExitCode int
		expectedOutput   []string
	}{
		{
			name: "missing artifact",
			err: &bootimage.StageError{
				Stage: bootimage.StageLoad,
				Err: &artifact.MissingArtifactError{
					Role: artifact.RoleKernel,
					Path: "/boot/kernel",
					Err:  fs.ErrNotExist,
				},
			},
			expectedExitCode: ExitMissingArtifact,
			expectedOutput: []string{
				"level=ERROR",
				"stage=load",
				"missing artifact kernel /boot/kernel",
			},
		},
		{
			name: "format error",
			err: &bootimage.StageError{
				Stage: bootimage.StageExtract,
				Err: fmt.Errorf("/boot/bl: %w", &bootcode.FormatError{
					Reason: "magic",
					Err:    bootcode.ErrNotELF,
				}),
			},
			expectedExitCode: ExitFormat,
			expectedOutput:   []string{"stage=extract"},
		},
		{
			name: "size overflow",
			err: &bootimage.StageError{
				Stage: bootimage.StageCompose,
				Err:   image.ErrSizeOverflow,
			},
			expectedExitCode: ExitSizeOverflow,
			expectedOutput:   []string{"stage=compose"},
		},
		{
			name: "io error",
			err: &bootimage.StageError{
				Stage: bootimage.StageChecksum,
				Err:   &image.IOError{Part: image.PartFile, Err: assert.AnError},
			},
			expectedExitCode: ExitIO,
			expectedOutput:   []string{"stage=checksum"},
		},
		{
			name: "objcopy failure",
			err: &bootimage.StageError{
				Stage: bootimage.StageExtract,
				Err:   &bootcode.ObjcopyExecError{Err: assert.AnError, Stderr: "bad input"},
			},
			expectedExitCode: ExitFailure,
			expectedOutput:   []string{"bad input"},
		},
		{
			name:             "any error",
			err:              assert.AnError,
			expectedExitCode: ExitFailure,
			expectedOutput:   []string{"assert.AnError general error for testing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdErr bytes.Buffer

			setupLogging(&stdErr, false)

			actualExitCode := handleRunError(tt.err)

			assert.Equal(t, tt.expectedExitCode, actualExitCode,
				"exit code should be as expected")

			for _, expected := range tt.expectedOutput {
				assert.Contains(t, stdErr.String(), expected)
			}
		})
	}
}

func TestHandleParseArgsError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedExitCode int
		expectedOutput   string
	}{
		{
			name:             "help",
			err:              &ParseArgsError{msg: "flag parse", err: flag.ErrHelp},
			expectedExitCode: ExitOK,
		},
		{
			name:             "parse args error",
			err:              &ParseArgsError{msg: "no kernel given"},
			expectedExitCode: ExitUsage,
		},
		{
			name:             "other error",
			err:              assert.AnError,
			expectedExitCode: ExitUsage,
			expectedOutput:   "assert.AnError general error for testing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdErr bytes.Buffer

			setupLogging(&stdErr, false)

			assert.Equal(t, tt.expectedExitCode, handleParseArgsError(tt.err))

			if tt.expectedOutput == "" {
				assert.Empty(t, stdErr.String())
			} else {
				assert.Contains(t, stdErr.String(), tt.expectedOutput)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, ExitOK, exitCodeFor(nil))
	assert.Equal(t, ExitMissingArtifact, exitCodeFor(artifact.ErrMissingArtifact))
	assert.Equal(t, ExitFormat, exitCodeFor(&bootcode.FormatError{Err: bootcode.ErrSectionNotFound}))
	assert.Equal(t, ExitSizeOverflow, exitCodeFor(fmt.Errorf("x: %w", image.ErrSizeOverflow)))
	assert.Equal(t, ExitIO, exitCodeFor(&image.IOError{Err: assert.AnError}))
	assert.Equal(t, ExitFailure, exitCodeFor(assert.AnError))
	assert.Equal(t, ExitFailure, exitCodeFor(fmt.Errorf("load: %w", context.Canceled)))
}
