// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aibor/bootimage/internal/sys"
)

// Store provides artifacts by path.
type Store interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// FileStore is a [Store] backed by a [fs.FS] rooted at "/".
type FileStore struct {
	// FS is the file system to read from. If nil, the host's root file
	// system is used and relative paths are resolved against the working
	// directory. Paths for a custom FS are always taken as absolute.
	FS fs.FS
}

// NewFileStore returns a [FileStore] on the host's root file system.
func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) open(path string) (fs.FS, string, error) {
	if s.FS != nil {
		return s.FS, relPath(path), nil
	}

	abs, err := sys.AbsolutePath(path)
	if err != nil {
		return nil, "", err //nolint:wrapcheck
	}

	return os.DirFS("/"), relPath(abs), nil
}

// Stat implements [Store].
func (s *FileStore) Stat(path string) (fs.FileInfo, error) {
	fsys, name, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	return info, nil
}

// ReadFile implements [Store].
func (s *FileStore) ReadFile(path string) ([]byte, error) {
	fsys, name, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return data, nil
}

// relPath converts an absolute path into one valid for [fs.FS] rooted at "/".
func relPath(path string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	if rel == "" {
		return "."
	}

	return rel
}
