// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootimage

import "errors"

// ErrOutputIsInput is returned if the output path equals an input path.
var ErrOutputIsInput = errors.New("output path must differ from input paths")

// Stage is a step of a [Build].
type Stage string

// Build stages in the order they run.
const (
	StageResolve  Stage = "resolve"
	StageLoad     Stage = "load"
	StageExtract  Stage = "extract"
	StageCompose  Stage = "compose"
	StageChecksum Stage = "checksum"
)

// StageError wraps the error of a failed [Stage].
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the [error] interface.
func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*StageError) Is(other error) bool {
	_, ok := other.(*StageError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *StageError) Unwrap() error {
	return e.Err
}
