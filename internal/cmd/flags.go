// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/aibor/bootimage/internal/bootcode"
	"github.com/aibor/bootimage/internal/sys"
)

const (
	name = "bootimage"

	objcopyDefault = "objcopy"

	usageMessage = `Usage of 'bootimage':
    bootimage [flags...] -kernel PATH -bootloader PATH

Composes a bootable disk image from a bootloader and a kernel. The image is
written next to the kernel with extension ".bin" unless -output is given.

All bootimage flags can also be provided via environment variable
BOOTIMAGE_ARGS:
	BOOTIMAGE_ARGS="-kernel=/path/to/kernel -debug" bootimage

All bootimage flags can also be provided via file ./.bootimage-args, with one
argument per line.
`
)

type flags struct {
	KernelPath     string
	BootloaderPath string
	OutputPath     string
	BundlePath     string
	ConfigPath     string

	Extractor bootcode.Mode
	Section   string
	Objcopy   string
	Arch      sys.Arch

	Wait          time.Duration
	AlignBootCode bool
	Checksum      bool

	Debug   bool
	Version bool

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func newFlagSet(flags *flags, output io.Writer) *flag.FlagSet {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), usageMessage)
		fmt.Fprintln(flagSet.Output(), "\nFlags:")
		flagSet.PrintDefaults()
	}

	flagSet.Var(
		(*FilePath)(&flags.KernelPath),
		"kernel",
		"path of the kernel artifact",
	)

	flagSet.Var(
		(*FilePath)(&flags.BootloaderPath),
		"bootloader",
		"path of the bootloader artifact",
	)

	flagSet.Var(
		(*FilePath)(&flags.OutputPath),
		"output",
		"path of the image (default kernel path with extension .bin)",
	)

	flagSet.TextVar(
		&flags.Extractor,
		"extractor",
		bootcode.ModeSection,
		"boot code extractor: section, objcopy, raw",
	)

	flagSet.StringVar(
		&flags.Section,
		"section",
		bootcode.DefaultSection,
		"ELF section holding the boot code (extractor section)",
	)

	flagSet.StringVar(
		&flags.Objcopy,
		"objcopy",
		objcopyDefault,
		"objcopy binary to use (extractor objcopy)",
	)

	flagSet.Var(
		&archValue{&flags.Arch},
		"arch",
		"boot code architecture for objcopy: amd64, 386 "+
			"(default derived from the bootloader ELF)",
	)

	flagSet.DurationVar(
		&flags.Wait,
		"wait",
		0,
		"time to wait for the artifacts to show up",
	)

	flagSet.Var(
		(*FilePath)(&flags.BundlePath),
		"bundle",
		"cpio archive to read the artifacts from instead of the file system",
	)

	flagSet.BoolVar(
		&flags.AlignBootCode,
		"align-boot-code",
		false,
		"pad the boot code to a multiple of 512 bytes",
	)

	flagSet.BoolVar(
		&flags.Checksum,
		"checksum",
		false,
		"write a BLAKE3 checksum file next to the image",
	)

	flagSet.Var(
		(*FilePath)(&flags.ConfigPath),
		"config",
		"TOML config file. Flags given explicitly take precedence",
	)

	flagSet.BoolVar(
		&flags.Debug,
		"debug",
		false,
		"enable debug output",
	)

	flagSet.BoolVar(
		&flags.Version,
		"version",
		false,
		"show version and exit",
	)

	return flagSet
}

// parseArgs parses the given arguments. The first argument is expected to be
// a flag already, not the program name.
//
// If a config file is given, its values are applied for all flags that are
// not given explicitly.
func parseArgs(args []string, output io.Writer) (*flags, error) {
	flags := &flags{
		set: make(map[string]bool),
	}

	flagSet := newFlagSet(flags, output)

	err := flagSet.Parse(args)
	if err != nil {
		return nil, &ParseArgsError{msg: "flag parse", err: err}
	}

	flagSet.Visit(func(f *flag.Flag) {
		flags.set[f.Name] = true
	})

	// With version flag, just return. Nothing else is required.
	if flags.Version {
		return flags, nil
	}

	if flagSet.NArg() > 0 {
		return nil, fail(flagSet, "unexpected positional arguments", nil)
	}

	if flags.ConfigPath != "" {
		cfg, err := loadConfig(flags.ConfigPath)
		if err != nil {
			return nil, fail(flagSet, "config file", err)
		}

		cfg.apply(flags)
	}

	if flags.KernelPath == "" {
		return nil, fail(flagSet, "no kernel given (use -kernel)", nil)
	}

	if flags.BootloaderPath == "" {
		return nil, fail(flagSet, "no bootloader given (use -bootloader)", nil)
	}

	return flags, nil
}

// fail fails like flag does. It prints the error first and then usage.
func fail(flagSet *flag.FlagSet, msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(flagSet.Output(), err.Error())

	flagSet.Usage()

	return err
}

// archValue is a [flag.Value] for an optional [sys.Arch].
type archValue struct {
	arch *sys.Arch
}

func (a *archValue) String() string {
	if a.arch == nil {
		return ""
	}

	return a.arch.String()
}

func (a *archValue) Set(s string) error {
	return a.arch.UnmarshalText([]byte(s)) //nolint:wrapcheck
}
