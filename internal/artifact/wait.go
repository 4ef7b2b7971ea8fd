// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultWaitInterval is the polling interval used by [Wait] if none is given.
const DefaultWaitInterval = 100 * time.Millisecond

// Wait polls the store until all referenced artifacts exist.
//
// It returns immediately if timeout is not positive. If an artifact does not
// show up in time, a [*MissingArtifactError] wrapping
// [context.DeadlineExceeded] is returned. Only [fs.ErrNotExist] is waited on,
// any other store error is returned right away as [*MissingArtifactError]. If
// ctx is cancelled, its error is returned as is.
func Wait(
	ctx context.Context,
	store Store,
	refs []Ref,
	timeout time.Duration,
	interval time.Duration,
) error {
	if timeout <= 0 {
		return nil
	}

	if interval <= 0 {
		return ErrInvalidInterval
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	group, groupCtx := errgroup.WithContext(timeoutCtx)

	for _, ref := range refs {
		group.Go(func() error {
			return poll(ctx, groupCtx, store, ref, interval)
		})
	}

	return group.Wait() //nolint:wrapcheck
}

// poll stats the ref until it exists or ctx is done. Errors of parent are
// returned unwrapped.
func poll(
	parent context.Context,
	ctx context.Context,
	store Store,
	ref Ref,
	interval time.Duration,
) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_, err := store.Stat(ref.Path)
		if err == nil {
			return nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return &MissingArtifactError{Role: ref.Role, Path: ref.Path, Err: err}
		}

		slog.Debug("Waiting for artifact",
			slog.String("role", ref.Role.String()),
			slog.String("path", ref.Path),
		)

		select {
		case <-ctx.Done():
			if parentErr := parent.Err(); parentErr != nil {
				return parentErr //nolint:wrapcheck
			}

			return &MissingArtifactError{
				Role: ref.Role,
				Path: ref.Path,
				Err:  ctx.Err(),
			}
		case <-ticker.C:
		}
	}
}
