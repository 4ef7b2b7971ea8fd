// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for bootimage. It handles
// argument merging, flag parsing, config files, logging setup and exit codes.
package cmd
