// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingArtifact is matched by any [MissingArtifactError].
	ErrMissingArtifact = errors.New("missing artifact")

	// ErrInvalidInterval is returned if a wait interval is not positive.
	ErrInvalidInterval = errors.New("interval must be positive")
)

// MissingArtifactError is returned if an artifact can not be found or read.
type MissingArtifactError struct {
	Role Role
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *MissingArtifactError) Error() string {
	msg := fmt.Sprintf("%s %s %s", ErrMissingArtifact, e.Role, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is implements the [errors.Is] interface.
func (e *MissingArtifactError) Is(other error) bool {
	if other == ErrMissingArtifact {
		return true
	}

	_, ok := other.(*MissingArtifactError)

	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *MissingArtifactError) Unwrap() error {
	return e.Err
}
