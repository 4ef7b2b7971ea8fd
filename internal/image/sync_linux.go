// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package image

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// syncDir flushes the directory entry changes of dir to storage.
func syncDir(dir string) error {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open dir: %w", err)
	}
	defer unix.Close(fd) //nolint:errcheck

	err = unix.Fsync(fd)
	if err != nil {
		return fmt.Errorf("sync dir: %w", err)
	}

	return nil
}
