// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagstream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// readChunkSize bounds how much memory a single length-prefixed read
// commits before the bytes actually arrive. A forged length of 2^31
// therefore fails with a truncation error after the stream runs dry
// instead of allocating gigabytes up front.
const readChunkSize = 64 << 10

// Reader reads big-endian primitives from an underlying stream and
// tracks the number of bytes consumed. A Reader is not safe for
// concurrent use.
type Reader struct {
	source  *bufio.Reader
	offset  int64
	scratch [8]byte
}

// NewReader returns a Reader over r. If r is already a *bufio.Reader
// it is used directly.
func NewReader(r io.Reader) *Reader {
	if buffered, ok := r.(*bufio.Reader); ok {
		return &Reader{source: buffered}
	}
	return &Reader{source: bufio.NewReader(r)}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Peek reports whether at least one more byte is available without
// consuming it. It returns false at a clean end of stream.
func (r *Reader) Peek() (bool, error) {
	_, err := r.source.Peek(1)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	return false, err
}

// ReadFull reads exactly len(buffer) bytes. A stream that ends partway
// through returns an error wrapping io.ErrUnexpectedEOF. A stream that
// is already at its end returns io.EOF unchanged so callers can tell
// "no more records" from "record cut short".
func (r *Reader) ReadFull(buffer []byte) error {
	count, err := io.ReadFull(r.source, buffer)
	r.offset += int64(count)
	if err != nil {
		if errors.Is(err, io.EOF) && count == 0 {
			return io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return fmt.Errorf("need %d bytes, got %d: %w", len(buffer), count, io.ErrUnexpectedEOF)
		}
		return err
	}
	return nil
}

// fixed reads a fixed-width field. Any end of stream inside a field
// is reported as io.ErrUnexpectedEOF, including one at the first byte:
// a caller asking for a field always expects it to be present.
func (r *Reader) fixed(width int) ([]byte, error) {
	buffer := r.scratch[:width]
	if err := r.ReadFull(buffer); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("need %d bytes, got 0: %w", width, io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	return buffer, nil
}

// ReadU8 reads one unsigned byte. At a clean end of stream it returns
// io.EOF, which lets a caller reading a sequence of records detect the
// end of the sequence.
func (r *Reader) ReadU8() (uint8, error) {
	value, err := r.source.ReadByte()
	if err != nil {
		return 0, err
	}
	r.offset++
	return value, nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	buffer, err := r.fixed(1)
	if err != nil {
		return 0, err
	}
	return int8(buffer[0]), nil
}

// ReadU16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadU16() (uint16, error) {
	buffer, err := r.fixed(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buffer), nil
}

// ReadI16 reads a big-endian signed 16-bit integer.
func (r *Reader) ReadI16() (int16, error) {
	value, err := r.ReadU16()
	return int16(value), err
}

// ReadU32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadU32() (uint32, error) {
	buffer, err := r.fixed(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buffer), nil
}

// ReadI32 reads a big-endian signed 32-bit integer.
func (r *Reader) ReadI32() (int32, error) {
	value, err := r.ReadU32()
	return int32(value), err
}

// ReadI64 reads a big-endian signed 64-bit integer.
func (r *Reader) ReadI64() (int64, error) {
	buffer, err := r.fixed(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buffer)), nil
}

// ReadF32 reads a big-endian IEEE 754 single-precision float.
func (r *Reader) ReadF32() (float32, error) {
	bits, err := r.ReadU32()
	return math.Float32frombits(bits), err
}

// ReadF64 reads a big-endian IEEE 754 double-precision float.
func (r *Reader) ReadF64() (float64, error) {
	value, err := r.ReadI64()
	return math.Float64frombits(uint64(value)), err
}

// ReadBytes reads exactly length bytes into a new slice. Memory grows
// in readChunkSize steps as data arrives.
func (r *Reader) ReadBytes(length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("negative length %d", length)
	}
	if length <= readChunkSize {
		buffer := make([]byte, length)
		if err := r.ReadFull(buffer); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("need %d bytes, got 0: %w", length, io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		return buffer, nil
	}

	buffer := make([]byte, 0, readChunkSize)
	for remaining := length; remaining > 0; {
		step := min(remaining, readChunkSize)
		start := len(buffer)
		buffer = append(buffer, make([]byte, step)...)
		if err := r.ReadFull(buffer[start:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("need %d bytes, got %d: %w", length, start, io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		remaining -= step
	}
	return buffer, nil
}

// ReadString16 reads a 16-bit unsigned length followed by that many
// bytes, returned as a string. The bytes are not validated as UTF-8,
// so a string read and written back reproduces its bytes exactly.
func (r *Reader) ReadString16() (string, error) {
	length, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	data, err := r.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
