// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the nbt
// command.
//
// Configuration is read from a single file named by either the
// NBT_CONFIG environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There is no directory search. When neither is given,
// [Load] returns [Default], so the tool works with no configuration at
// all; a named file that cannot be read is always an error.
//
// String values support ${VAR} and ${VAR:-default} expansion after
// loading. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- compression, depth, output, and logging settings
//   - [Default] -- the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
//
// This package depends on no other packages in this module.
package config
