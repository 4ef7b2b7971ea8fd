// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/aibor/bootimage/internal/artifact"
	"github.com/aibor/bootimage/internal/bootcode"
	"github.com/aibor/bootimage/internal/bootimage"
	"github.com/dustin/go-humanize"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return flags, nil
}

func newSpec(flags *flags) (bootimage.Spec, error) {
	spec := bootimage.Spec{
		KernelPath:     flags.KernelPath,
		BootloaderPath: flags.BootloaderPath,
		OutputPath:     flags.OutputPath,
		Mode:           flags.Extractor,
		Extractor: bootcode.Options{
			Section: flags.Section,
			Objcopy: flags.Objcopy,
			Arch:    flags.Arch,
		},
		Wait:          flags.Wait,
		AlignBootCode: flags.AlignBootCode,
		Checksum:      flags.Checksum,
	}

	if flags.BundlePath != "" {
		store, err := openBundle(flags.BundlePath)
		if err != nil {
			return bootimage.Spec{}, &bootimage.StageError{
				Stage: bootimage.StageLoad,
				Err:   err,
			}
		}

		spec.Store = store
	}

	return spec, nil
}

func openBundle(path string) (*artifact.CPIOStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &artifact.MissingArtifactError{Role: artifact.RoleBundle, Path: path, Err: err}
	}
	defer file.Close()

	store, err := artifact.NewCPIOStore(file)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", path, err)
	}

	slog.Debug("Opened bundle",
		slog.String("path", path),
		slog.Int("artifacts", store.Len()),
	)

	return store, nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	spec, err := newSpec(flags)
	if err != nil {
		return err
	}

	res, err := bootimage.Build(ctx, spec)
	if err != nil {
		return err //nolint:wrapcheck
	}

	printResult(cfg.Stdout, res)

	return nil
}

func printResult(w io.Writer, res bootimage.Result) {
	size := res.Layout.Size()

	fmt.Fprintf(w, "Image: %s\n", res.Path)
	fmt.Fprintf(w, "Size: %d bytes (%s)\n", size, humanize.IBytes(size))
	fmt.Fprintf(w, "BLAKE3: %s\n", res.Digest)

	if res.ChecksumPath != "" {
		fmt.Fprintf(w, "Checksum file: %s\n", res.ChecksumPath)
	}
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return ExitOK
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return ExitUsage
}

func handleRunError(err error) int {
	attrs := []any{slog.Any("error", err)}

	var stageErr *bootimage.StageError
	if errors.As(err, &stageErr) {
		attrs = append(attrs, slog.String("stage", string(stageErr.Stage)))
	}

	slog.Error("Failed to build image", attrs...)

	return exitCodeFor(err)
}

// Run is the main entry point for the CLI command. The first argument is
// expected to be the program name.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	if len(args) > 0 {
		args = args[1:]
	}

	flags, err := newFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug)

	if flags.Version {
		buildInfo, err := getBuildInfo()
		if err != nil {
			slog.Error(err.Error())
			return ExitFailure
		}

		fmt.Fprintf(cfg.Stdout, "Version: %s\n", buildInfo.Main.Version)

		return ExitOK
	}

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return ExitOK
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
