// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress provides the stream compression filters that sit
// between a tag file on disk and the tag codec.
//
// The codec itself reads and writes raw tag bytes. Tag files are
// usually gzip-compressed, and some producers use zlib, zstd, or LZ4
// frames instead. [NewReader] and [NewWriter] wrap a stream with the
// filter named by a [Filter]; [Detect] and [NewDetectingReader] pick
// the filter from the first bytes of the stream.
//
// Closing a filter returned by this package finishes the compressed
// stream (writers) or releases decoder state (readers). It never closes
// the underlying stream; that remains the caller's resource.
package compress
