// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bootimage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aibor/bootimage/internal/artifact"
	"github.com/aibor/bootimage/internal/bootcode"
	"github.com/aibor/bootimage/internal/image"
	"github.com/aibor/bootimage/internal/sys"
	"github.com/dustin/go-humanize"
)

// Result describes a successfully built image.
type Result struct {
	image.Result

	// ChecksumPath is the path of the checksum file. It is empty if no
	// checksum file was requested.
	ChecksumPath string
}

type plan struct {
	kernel     string
	bootloader string
	output     string
	mode       bootcode.Mode
	extractor  bootcode.Extractor
}

func (p *plan) refs() []artifact.Ref {
	return []artifact.Ref{
		{Role: artifact.RoleKernel, Path: p.kernel},
		{Role: artifact.RoleBootloader, Path: p.bootloader},
	}
}

// Build builds the image described by the given [Spec].
//
// A failure in any stage aborts the build and is returned as [*StageError].
// No partial image is left behind in this case.
func Build(ctx context.Context, spec Spec) (Result, error) {
	plan, err := resolve(spec)
	if err != nil {
		return Result{}, &StageError{Stage: StageResolve, Err: err}
	}

	slog.Debug("Resolved build",
		slog.String("kernel", plan.kernel),
		slog.String("bootloader", plan.bootloader),
		slog.String("output", plan.output),
		slog.String("extractor", plan.mode.String()),
	)

	kernel, bootloader, err := load(ctx, spec, plan)
	if err != nil {
		return Result{}, &StageError{Stage: StageLoad, Err: err}
	}

	bootCode, err := extract(ctx, plan.extractor, bootloader, spec.AlignBootCode)
	if err != nil {
		return Result{}, &StageError{Stage: StageExtract, Err: err}
	}

	res, err := compose(ctx, plan.output, bootCode, kernel.Data)
	if err != nil {
		return Result{}, &StageError{Stage: StageCompose, Err: err}
	}

	result := Result{Result: res}

	if spec.Checksum {
		result.ChecksumPath, err = image.WriteChecksumFile(res)
		if err != nil {
			return Result{}, &StageError{Stage: StageChecksum, Err: err}
		}

		slog.Debug("Wrote checksum file", slog.String("path", result.ChecksumPath))
	}

	slog.Info("Built image",
		slog.String("path", res.Path),
		slog.String("size", humanize.IBytes(res.Layout.Size())),
		slog.String("digest", res.Digest),
	)

	return result, nil
}

func resolve(spec Spec) (plan, error) {
	if spec.KernelPath == "" {
		return plan{}, fmt.Errorf("kernel: %w", sys.ErrEmptyPath)
	}

	if spec.BootloaderPath == "" {
		return plan{}, fmt.Errorf("bootloader: %w", sys.ErrEmptyPath)
	}

	resolved := plan{
		kernel:     spec.KernelPath,
		bootloader: spec.BootloaderPath,
		output:     spec.OutputPath,
		mode:       spec.Mode,
	}

	if resolved.output == "" {
		resolved.output = image.OutputPath(resolved.kernel)
	}

	// The host file system store only knows absolute paths.
	if spec.Store == nil {
		for _, path := range []*string{
			&resolved.kernel,
			&resolved.bootloader,
			&resolved.output,
		} {
			abs, err := sys.AbsolutePath(*path)
			if err != nil {
				return plan{}, err
			}

			*path = abs
		}
	}

	for _, input := range []string{resolved.kernel, resolved.bootloader} {
		if filepath.Clean(resolved.output) == filepath.Clean(input) {
			return plan{}, fmt.Errorf("%w: %s", ErrOutputIsInput, resolved.output)
		}
	}

	if resolved.mode == "" {
		resolved.mode = bootcode.ModeSection
	}

	extractor, err := bootcode.New(resolved.mode, spec.Extractor)
	if err != nil {
		return plan{}, fmt.Errorf("extractor: %w", err)
	}

	resolved.extractor = extractor

	return resolved, nil
}

func load(
	ctx context.Context,
	spec Spec,
	p plan,
) (artifact.Artifact, artifact.Artifact, error) {
	store := spec.store()
	refs := p.refs()

	err := artifact.Wait(ctx, store, refs, spec.Wait, spec.waitInterval())
	if err != nil {
		return artifact.Artifact{}, artifact.Artifact{}, fmt.Errorf("wait: %w", err)
	}

	artifacts, err := artifact.LoadAll(ctx, store, refs...)
	if err != nil {
		return artifact.Artifact{}, artifact.Artifact{}, err //nolint:wrapcheck
	}

	kernel, bootloader := artifacts[0], artifacts[1]

	slog.Debug("Loaded artifacts",
		slog.String("kernel_size", humanize.IBytes(kernel.Size())),
		slog.String("bootloader_size", humanize.IBytes(bootloader.Size())),
	)

	return kernel, bootloader, nil
}

func extract(
	ctx context.Context,
	extractor bootcode.Extractor,
	bootloader artifact.Artifact,
	align bool,
) (bootcode.BootCode, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	bootCode, err := extractor.Extract(ctx, bootloader.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", bootloader.Path, err)
	}

	pad := image.PadLen(uint64(len(bootCode)), image.SectorSize)
	if pad != 0 {
		if align {
			slog.Debug("Aligning boot code",
				slog.Int("size", len(bootCode)),
				slog.Uint64("padding", pad),
			)

			bootCode = image.AlignBootCode(bootCode)
		} else {
			slog.Warn("Boot code is not sector aligned, image will not be either",
				slog.Int("size", len(bootCode)),
				slog.Int("sector_size", image.SectorSize),
			)
		}
	}

	slog.Debug("Extracted boot code",
		slog.String("size", humanize.IBytes(uint64(len(bootCode)))),
	)

	return bootCode, nil
}

func compose(
	ctx context.Context,
	output string,
	bootCode bootcode.BootCode,
	kernel []byte,
) (image.Result, error) {
	err := ctx.Err()
	if err != nil {
		return image.Result{}, err //nolint:wrapcheck
	}

	res, err := image.WriteFile(output, bootCode, kernel)
	if err != nil {
		return image.Result{}, fmt.Errorf("%s: %w", output, err)
	}

	slog.Debug("Composed image",
		slog.String("path", res.Path),
		slog.Uint64("boot_code_size", res.Layout.BootCodeSize),
		slog.Uint64("kernel_size", res.Layout.KernelSize),
		slog.Uint64("padding_size", res.Layout.PaddingSize),
	)

	return res, nil
}
