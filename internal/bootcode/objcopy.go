// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootcode

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/aibor/bootimage/internal/sys"
)

const (
	objcopyDefault = "objcopy"
	objcopyTimeout = 30 * time.Second
)

var _ Extractor = (*ObjcopyExtractor)(nil)

// ObjcopyExtractor is an [Extractor] that converts the ELF artifact into a
// flat binary by invoking objcopy.
//
// The artifact must carry the boot code as its only loadable content. The
// output of objcopy is used as is.
type ObjcopyExtractor struct {
	// Executable is the objcopy binary. Defaults to "objcopy" as found in
	// PATH.
	Executable string
	// Arch of the boot code. If empty, it is derived from the artifact.
	Arch sys.Arch
	// TempDir is the directory for intermediate files. If empty, the default
	// directory as returned by [os.TempDir] is used.
	TempDir string
}

// Extract writes the artifact into a temporary directory, runs objcopy on it
// and returns the produced flat binary.
func (x *ObjcopyExtractor) Extract(
	ctx context.Context,
	artifact []byte,
) (BootCode, error) {
	dir, err := os.MkdirTemp(x.TempDir, "bootcode")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "bootloader.elf")
	output := filepath.Join(dir, "bootloader.bin")

	err = os.WriteFile(input, artifact, 0o600)
	if err != nil {
		return nil, fmt.Errorf("write input: %w", err)
	}

	arch, err := x.arch(artifact)
	if err != nil {
		return nil, err
	}

	args, err := objcopyArgs(arch, input, output)
	if err != nil {
		return nil, err
	}

	executable := x.Executable
	if executable == "" {
		executable = objcopyDefault
	}

	slog.Debug("Run objcopy",
		slog.String("executable", executable),
		slog.Any("args", args),
	)

	err = runObjcopy(ctx, executable, args)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	if len(data) == 0 {
		return nil, &FormatError{Reason: "objcopy output", Err: ErrEmptyBootCode}
	}

	return BootCode(data), nil
}

// arch returns the configured architecture. If none is configured, it is
// derived from the machine type of the ELF artifact. Artifacts that can not be
// parsed are assumed to be [sys.AMD64] and left for objcopy to reject.
func (x *ObjcopyExtractor) arch(artifact []byte) (sys.Arch, error) {
	if x.Arch != "" {
		return x.Arch, nil
	}

	img, err := ParseELF(artifact)
	if err != nil {
		return sys.AMD64, nil //nolint:nilerr
	}

	arch, err := sys.ArchForMachine(img.Header.Machine)
	if err != nil {
		return "", &FormatError{Reason: "machine", Err: err}
	}

	return arch, nil
}

func objcopyArgs(arch sys.Arch, input, output string) ([]string, error) {
	target, err := arch.BFDTarget()
	if err != nil {
		return nil, fmt.Errorf("input target: %w", err)
	}

	architecture, err := arch.BFDArchitecture()
	if err != nil {
		return nil, fmt.Errorf("binary architecture: %w", err)
	}

	return []string{
		"--input-target=" + target,
		"--output-target=binary",
		"--binary-architecture=" + architecture,
		input,
		output,
	}, nil
}

func runObjcopy(ctx context.Context, executable string, args []string) error {
	var stderrBuf bytes.Buffer

	ctx, stop := context.WithTimeout(ctx, objcopyTimeout)
	defer stop()

	cmd := exec.CommandContext(ctx, executable, args...)
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil {
		return &ObjcopyExecError{
			Err:    err,
			Stderr: stderrBuf.String(),
		}
	}

	return nil
}
