// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Nbt is a command-line tool for Named Binary Tag data: decoding to
// typed JSON or CBOR, encoding back, dumping, validating, hashing, and
// recompressing.
//
// Exit status is 0 on success, 1 when validation or verification fails
// or an internal error occurs, and 2 when the input or flags are
// invalid.
//
// Version information is injected at build time:
//
//	go build -ldflags "-X github.com/bureau-foundation/nbt/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/nbt
package main
