// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tagstream provides the big-endian primitive I/O that the
// tag codec reads and writes through.
//
// [Reader] wraps an [io.Reader] and exposes fixed-width readers
// (ReadU8, ReadU16, ReadI32, ReadF64, ...) plus length-prefixed byte
// and string readers. Every read either returns exactly the requested
// bytes or fails with an error matching [io.ErrUnexpectedEOF] (or
// [io.EOF] when the stream ends cleanly before the first byte of a
// field). The reader counts consumed bytes so decode errors can report
// the offset at which they happened.
//
// [Writer] is the mirror image. It buffers through a [bufio.Writer];
// callers must call [Writer.Flush] when a write pass completes.
//
// Neither type knows anything about compression. Decompression and
// compression filters wrap the underlying stream before it reaches
// this package (see lib/compress).
package tagstream
