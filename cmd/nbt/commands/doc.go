// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the nbt command tree.
//
// Subcommands:
//
//   - decode: convert tag data to typed JSON, CBOR, or CBOR diagnostic
//     notation.
//   - encode: convert typed JSON (or JSONC) back to tag data.
//   - diag: print an indented, optionally coloured dump of the tree.
//   - validate: decode and re-encode, reporting the first byte that
//     differs and any trailing data.
//   - hash: print or verify the BLAKE3 tree hash.
//   - recompress: rewrite tag data with a different compression filter.
//   - version: print build information.
//
// Every command that reads tag data takes an optional trailing file
// path, reading stdin otherwise, and detects the compression filter
// from the stream header unless --from names one. With --hex, input is
// hex text rather than raw binary.
//
// Settings come from the YAML file named by --config or NBT_CONFIG (see
// lib/config); flags override the file.
package commands
