// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aibor/bootimage/internal/bootcode"
	"github.com/aibor/bootimage/internal/sys"
)

type extractorConfig struct {
	Mode    bootcode.Mode `toml:"mode"`
	Section string        `toml:"section"`
	Objcopy string        `toml:"objcopy"`
	Arch    sys.Arch      `toml:"arch"`
}

// config is the content of a TOML config file.
type config struct {
	Kernel        string          `toml:"kernel"`
	Bootloader    string          `toml:"bootloader"`
	Output        string          `toml:"output"`
	Bundle        string          `toml:"bundle"`
	Wait          time.Duration   `toml:"wait"`
	AlignBootCode bool            `toml:"align_boot_code"`
	Checksum      bool            `toml:"checksum"`
	Extractor     extractorConfig `toml:"extractor"`

	meta toml.MetaData
}

// loadConfig reads the TOML config file at path. Relative paths in the file
// are resolved relative to the directory of the file.
func loadConfig(path string) (*config, error) {
	var cfg config

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return nil, fmt.Errorf("%w: %s", ErrUnknownConfigKey, strings.Join(keys, ", "))
	}

	cfg.meta = meta

	dir := filepath.Dir(path)
	cfg.Kernel = sys.ResolvePath(dir, cfg.Kernel)
	cfg.Bootloader = sys.ResolvePath(dir, cfg.Bootloader)
	cfg.Output = sys.ResolvePath(dir, cfg.Output)
	cfg.Bundle = sys.ResolvePath(dir, cfg.Bundle)

	return &cfg, nil
}

// apply sets all values defined in the config file on flags that have not
// been given explicitly.
func (c *config) apply(f *flags) {
	set := func(flagName string, key ...string) bool {
		return !f.set[flagName] && c.meta.IsDefined(key...)
	}

	if set("kernel", "kernel") {
		f.KernelPath = c.Kernel
	}

	if set("bootloader", "bootloader") {
		f.BootloaderPath = c.Bootloader
	}

	if set("output", "output") {
		f.OutputPath = c.Output
	}

	if set("bundle", "bundle") {
		f.BundlePath = c.Bundle
	}

	if set("wait", "wait") {
		f.Wait = c.Wait
	}

	if set("align-boot-code", "align_boot_code") {
		f.AlignBootCode = c.AlignBootCode
	}

	if set("checksum", "checksum") {
		f.Checksum = c.Checksum
	}

	if set("extractor", "extractor", "mode") {
		f.Extractor = c.Extractor.Mode
	}

	if set("section", "extractor", "section") {
		f.Section = c.Extractor.Section
	}

	if set("objcopy", "extractor", "objcopy") {
		f.Objcopy = c.Extractor.Objcopy
	}

	if set("arch", "extractor", "arch") {
		f.Arch = c.Extractor.Arch
	}
}
