// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aibor/bootimage/internal/artifact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statErrorStore struct {
	err   error
	calls int
}

func (s *statErrorStore) Stat(string) (fs.FileInfo, error) {
	s.calls++

	return nil, s.err
}

func (s *statErrorStore) ReadFile(string) ([]byte, error) {
	return nil, s.err
}

func TestWait(t *testing.T) {
	const interval = 5 * time.Millisecond

	t.Run("present", func(t *testing.T) {
		err := artifact.Wait(t.Context(), testStore(), []artifact.Ref{
			{Role: artifact.RoleKernel, Path: "/build/kernel"},
			{Role: artifact.RoleBootloader, Path: "/build/bootloader"},
		}, time.Second, interval)
		require.NoError(t, err)
	})

	t.Run("no timeout", func(t *testing.T) {
		err := artifact.Wait(t.Context(), testStore(), []artifact.Ref{
			{Role: artifact.RoleKernel, Path: "/build/nope"},
		}, 0, interval)
		require.NoError(t, err)
	})

	t.Run("invalid interval", func(t *testing.T) {
		err := artifact.Wait(t.Context(), testStore(), nil, time.Second, 0)
		require.ErrorIs(t, err, artifact.ErrInvalidInterval)
	})

	t.Run("timeout", func(t *testing.T) {
		err := artifact.Wait(t.Context(), testStore(), []artifact.Ref{
			{Role: artifact.RoleKernel, Path: "/build/kernel"},
			{Role: artifact.RoleBootloader, Path: "/build/nope"},
		}, 20*time.Millisecond, interval)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		var missingErr *artifact.MissingArtifactError

		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, artifact.RoleBootloader, missingErr.Role)
		assert.Equal(t, "/build/nope", missingErr.Path)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := artifact.Wait(ctx, testStore(), []artifact.Ref{
			{Role: artifact.RoleKernel, Path: "/build/nope"},
		}, time.Second, interval)
		require.ErrorIs(t, err, context.Canceled)
		require.NotErrorIs(t, err, artifact.ErrMissingArtifact)
	})

	t.Run("stat error", func(t *testing.T) {
		store := &statErrorStore{err: fs.ErrPermission}

		err := artifact.Wait(t.Context(), store, []artifact.Ref{
			{Role: artifact.RoleKernel, Path: "/build/kernel"},
		}, 5*time.Second, interval)
		require.ErrorIs(t, err, fs.ErrPermission)
		require.ErrorIs(t, err, artifact.ErrMissingArtifact)
		require.NotErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, store.calls)
	})

	t.Run("appears", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "kernel")

		timer := time.AfterFunc(30*time.Millisecond, func() {
			_ = os.WriteFile(path, []byte("kernel"), 0o600)
		})
		t.Cleanup(func() { timer.Stop() })

		err := artifact.Wait(t.Context(), artifact.NewFileStore(), []artifact.Ref{
			{Role: artifact.RoleKernel, Path: path},
		}, 5*time.Second, interval)
		require.NoError(t, err)

		_, err = artifact.Load(artifact.NewFileStore(), artifact.Ref{
			Role: artifact.RoleKernel,
			Path: path,
		})
		require.NoError(t, err)
	})
}
