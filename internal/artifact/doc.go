// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package artifact provides access to the build outputs an image is composed
// from. Artifacts are read from a [Store], which is either backed by a file
// system or by a cpio bundle of build outputs.
package artifact
