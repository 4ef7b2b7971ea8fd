// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"context"
	"log/slog"

	"github.com/aibor/bootimage/internal/sys"
	"golang.org/x/sync/errgroup"
)

// Load reads the referenced artifact from the store.
//
// Any failure is returned as [*MissingArtifactError].
func Load(store Store, ref Ref) (Artifact, error) {
	missing := func(err error) error {
		return &MissingArtifactError{Role: ref.Role, Path: ref.Path, Err: err}
	}

	if ref.Path == "" {
		return Artifact{}, missing(sys.ErrEmptyPath)
	}

	info, err := store.Stat(ref.Path)
	if err != nil {
		return Artifact{}, missing(err)
	}

	if !info.Mode().IsRegular() {
		return Artifact{}, missing(sys.ErrNotRegularFile)
	}

	data, err := store.ReadFile(ref.Path)
	if err != nil {
		return Artifact{}, missing(err)
	}

	slog.Debug("Loaded artifact",
		slog.String("role", ref.Role.String()),
		slog.String("path", ref.Path),
		slog.Int("size", len(data)),
	)

	return Artifact{
		Role: ref.Role,
		Path: ref.Path,
		Data: data,
	}, nil
}

// LoadAll loads all referenced artifacts concurrently. The artifacts are
// returned in the order of the refs. The first error cancels the remaining
// loads. If ctx is done, its error is returned as is.
func LoadAll(ctx context.Context, store Store, refs ...Ref) ([]Artifact, error) {
	artifacts := make([]Artifact, len(refs))

	group, ctx := errgroup.WithContext(ctx)

	for idx, ref := range refs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			artifact, err := Load(store, ref)
			if err != nil {
				return err
			}

			artifacts[idx] = artifact

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return artifacts, nil
}
