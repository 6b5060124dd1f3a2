// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. It centralizes
// the raw stderr write and process exit that happen in main() after the
// command tree has returned, when the structured logger may not apply.
//
// Errors choose their exit status by implementing [Coder], and suppress
// the "error:" line by implementing [Quiet].
package process
