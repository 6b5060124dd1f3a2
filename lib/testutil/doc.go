// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [Hex] turns a spaced hex listing ("0A 00 04 72 6F 6F 74") into bytes
// so wire-format tests can state expected encodings the way they are
// written in format documentation. [HexDump] is the inverse and is used
// in failure messages.
//
// [FilePath] returns a path inside a per-test temporary directory for
// tests that read and write tree files.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no internal dependencies.
package testutil
