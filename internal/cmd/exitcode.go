// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"

	"github.com/aibor/bootimage/internal/artifact"
	"github.com/aibor/bootimage/internal/bootcode"
	"github.com/aibor/bootimage/internal/image"
)

// Exit codes of [Run].
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitUsage           = 2
	ExitMissingArtifact = 3
	ExitFormat          = 4
	ExitSizeOverflow    = 5
	ExitIO              = 6
)

// exitCodeFor returns the exit code for the kind of the given error.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitFailure
	case errors.Is(err, artifact.ErrMissingArtifact):
		return ExitMissingArtifact
	case errors.Is(err, &bootcode.FormatError{}):
		return ExitFormat
	case errors.Is(err, image.ErrSizeOverflow):
		return ExitSizeOverflow
	case errors.Is(err, &image.IOError{}):
		return ExitIO
	default:
		return ExitFailure
	}
}
