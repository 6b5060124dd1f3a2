// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbtfile reads and writes tag trees through a compression
// filter, as tag files are stored on disk.
//
// [Read] and [ReadAll] decode from any stream, detecting the filter
// from the stream header unless one is pinned in [Options]. [Write]
// compresses with the configured filter. [ReadFile] and [WriteFile]
// add file handling: the file is closed on every path, and WriteFile
// replaces its target atomically so a failed encode never leaves a
// truncated file behind.
package nbtfile
