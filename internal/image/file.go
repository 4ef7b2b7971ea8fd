// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

const (
	imageExt    = ".bin"
	checksumExt = ".b3sum"
	fileMode    = 0o644
)

// Result describes a written image file.
type Result struct {
	Path   string
	Layout Layout
	// Digest is the hex encoded BLAKE3-256 digest of the image.
	Digest string
}

// OutputPath returns the default image path for a kernel. It is the kernel
// path with its extension replaced by ".bin".
func OutputPath(kernelPath string) string {
	base := filepath.Base(kernelPath)

	ext := filepath.Ext(base)
	if ext == base {
		// Dot files like ".kernel" have no extension.
		ext = ""
	}

	return strings.TrimSuffix(kernelPath, ext) + imageExt
}

// Digest returns the hex encoded BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteFile composes the image and writes it to path.
//
// The image is written into a temporary file in the same directory first,
// which is flushed to storage and renamed to path once complete. On failure
// the temporary file is removed, so no partial image is left behind. Sizes
// are checked before any file is created.
func WriteFile(path string, bootCode, kernel []byte) (Result, error) {
	_, err := NewLayout(uint64(len(bootCode)), uint64(len(kernel)))
	if err != nil {
		return Result{}, err
	}

	dir := filepath.Dir(path)

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return Result{}, &IOError{Part: PartFile, Err: err}
	}

	tmpPath := file.Name()

	layout, digest, err := writeTo(file, bootCode, kernel)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)

		return Result{}, err
	}

	err = file.Close()
	if err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, &IOError{Part: PartFile, Err: err}
	}

	err = commit(tmpPath, path)
	if err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, &IOError{Part: PartFile, Err: err}
	}

	// The rename is effective already. A failure here only means it might
	// not be persisted yet.
	err = syncDir(dir)
	if err != nil {
		return Result{}, &IOError{Part: PartFile, Err: err}
	}

	return Result{
		Path:   path,
		Layout: layout,
		Digest: digest,
	}, nil
}

func writeTo(file *os.File, bootCode, kernel []byte) (Layout, string, error) {
	hasher := blake3.New()

	layout, err := Compose(io.MultiWriter(file, hasher), bootCode, kernel)
	if err != nil {
		return layout, "", err
	}

	err = file.Sync()
	if err != nil {
		return layout, "", &IOError{Part: PartFile, Err: fmt.Errorf("sync: %w", err)}
	}

	return layout, hex.EncodeToString(hasher.Sum(nil)), nil
}

func commit(tmpPath, path string) error {
	err := os.Chmod(tmpPath, fileMode)
	if err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	err = os.Rename(tmpPath, path)
	if err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// WriteChecksumFile writes the digest of the image described by res next to
// it in b3sum format. It returns the path of the checksum file.
func WriteChecksumFile(res Result) (string, error) {
	path := res.Path + checksumExt
	line := fmt.Sprintf("%s  %s\n", res.Digest, filepath.Base(res.Path))

	err := os.WriteFile(path, []byte(line), fileMode)
	if err != nil {
		return "", &IOError{Part: PartFile, Err: err}
	}

	return path, nil
}
