// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/cavaliergopher/cpio"
)

type cpioEntry struct {
	info fs.FileInfo
	data []byte
}

// CPIOStore is a [Store] backed by a cpio bundle of build outputs.
//
// Only regular files of the bundle are available. Entry names are treated as
// absolute paths, so "boot/kernel", "./boot/kernel" and "/boot/kernel" all
// refer to the same artifact.
type CPIOStore struct {
	entries map[string]cpioEntry
}

// NewCPIOStore reads the whole cpio archive from r.
func NewCPIOStore(r io.Reader) (*CPIOStore, error) {
	store := &CPIOStore{
		entries: make(map[string]cpioEntry),
	}

	reader := cpio.NewReader(r)

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}

		info := hdr.FileInfo()
		if !info.Mode().IsRegular() {
			continue
		}

		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("read body for %s: %w", hdr.Name, err)
		}

		store.entries[bundlePath(hdr.Name)] = cpioEntry{
			info: info,
			data: data,
		}
	}

	return store, nil
}

// Len returns the number of artifacts in the store.
func (s *CPIOStore) Len() int {
	return len(s.entries)
}

func (s *CPIOStore) lookup(name string) (cpioEntry, error) {
	entry, exists := s.entries[bundlePath(filepath.ToSlash(name))]
	if !exists {
		return cpioEntry{}, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return entry, nil
}

// Stat implements [Store].
func (s *CPIOStore) Stat(path string) (fs.FileInfo, error) {
	entry, err := s.lookup(path)
	if err != nil {
		return nil, err
	}

	return entry.info, nil
}

// ReadFile implements [Store]. The returned data is shared with the store.
func (s *CPIOStore) ReadFile(path string) ([]byte, error) {
	entry, err := s.lookup(path)
	if err != nil {
		return nil, err
	}

	return entry.data, nil
}

func bundlePath(name string) string {
	return path.Clean("/" + name)
}
