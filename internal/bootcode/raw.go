// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import "context"

var _ Extractor = (*RawExtractor)(nil)

// RawExtractor is an [Extractor] for artifacts that already are flat
// binaries.
type RawExtractor struct{}

// Extract returns the artifact unchanged.
func (*RawExtractor) Extract(_ context.Context, artifact []byte) (BootCode, error) {
	if len(artifact) == 0 {
		return nil, &FormatError{Reason: "raw artifact", Err: ErrEmptyBootCode}
	}

	return BootCode(artifact), nil
}
