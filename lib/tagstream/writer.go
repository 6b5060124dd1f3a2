// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagstream

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// MaxString16 is the longest byte sequence a 16-bit length prefix can
// describe.
const MaxString16 = math.MaxUint16

// Writer writes big-endian primitives to an underlying stream through
// a buffer. The first write error is sticky: once a write fails, every
// later call returns the same error without writing. A Writer is not
// safe for concurrent use.
type Writer struct {
	sink    *bufio.Writer
	offset  int64
	err     error
	scratch [8]byte
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{sink: bufio.NewWriter(w)}
}

// Offset returns the number of bytes written so far (including bytes
// still held in the buffer).
func (w *Writer) Offset() int64 {
	return w.offset
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// Reset discards buffered data and any sticky error, and directs later
// writes to dst. Offset restarts at zero.
func (w *Writer) Reset(dst io.Writer) {
	w.sink.Reset(dst)
	w.offset = 0
	w.err = nil
}

// Flush writes buffered data to the underlying stream.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.sink.Flush()
	return w.err
}

// Write writes data in full.
func (w *Writer) Write(data []byte) error {
	if w.err != nil {
		return w.err
	}
	count, err := w.sink.Write(data)
	w.offset += int64(count)
	if err != nil {
		w.err = err
	}
	return w.err
}

// WriteU8 writes one unsigned byte.
func (w *Writer) WriteU8(value uint8) error {
	if w.err != nil {
		return w.err
	}
	if err := w.sink.WriteByte(value); err != nil {
		w.err = err
		return err
	}
	w.offset++
	return nil
}

// WriteI8 writes one signed byte.
func (w *Writer) WriteI8(value int8) error {
	return w.WriteU8(uint8(value))
}

// WriteU16 writes a big-endian unsigned 16-bit integer.
func (w *Writer) WriteU16(value uint16) error {
	binary.BigEndian.PutUint16(w.scratch[:2], value)
	return w.Write(w.scratch[:2])
}

// WriteI16 writes a big-endian signed 16-bit integer.
func (w *Writer) WriteI16(value int16) error {
	return w.WriteU16(uint16(value))
}

// WriteU32 writes a big-endian unsigned 32-bit integer.
func (w *Writer) WriteU32(value uint32) error {
	binary.BigEndian.PutUint32(w.scratch[:4], value)
	return w.Write(w.scratch[:4])
}

// WriteI32 writes a big-endian signed 32-bit integer.
func (w *Writer) WriteI32(value int32) error {
	return w.WriteU32(uint32(value))
}

// WriteI64 writes a big-endian signed 64-bit integer.
func (w *Writer) WriteI64(value int64) error {
	binary.BigEndian.PutUint64(w.scratch[:8], uint64(value))
	return w.Write(w.scratch[:8])
}

// WriteF32 writes a big-endian IEEE 754 single-precision float.
func (w *Writer) WriteF32(value float32) error {
	return w.WriteU32(math.Float32bits(value))
}

// WriteF64 writes a big-endian IEEE 754 double-precision float.
func (w *Writer) WriteF64(value float64) error {
	return w.WriteI64(int64(math.Float64bits(value)))
}

// WriteString16 writes a 16-bit unsigned length followed by the bytes
// of value. Strings longer than [MaxString16] bytes are rejected before
// anything is written.
func (w *Writer) WriteString16(value string) error {
	if len(value) > MaxString16 {
		return fmt.Errorf("string of %d bytes exceeds the 16-bit length limit of %d", len(value), MaxString16)
	}
	if err := w.WriteU16(uint16(len(value))); err != nil {
		return err
	}
	if w.err != nil {
		return w.err
	}
	count, err := w.sink.WriteString(value)
	w.offset += int64(count)
	if err != nil {
		w.err = err
	}
	return w.err
}
