// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tagstream

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
)

func TestWriterReaderPrimitives(t *testing.T) {
	var buffer bytes.Buffer
	writer := NewWriter(&buffer)

	writer.WriteU8(0xAB)
	writer.WriteI8(-5)
	writer.WriteI16(-2)
	writer.WriteU16(0xBEEF)
	writer.WriteI32(42)
	writer.WriteI64(math.MinInt64)
	writer.WriteF32(1.5)
	writer.WriteF64(-0.25)
	writer.WriteString16("héllo")
	if err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	wantOffset := int64(1 + 1 + 2 + 2 + 4 + 8 + 4 + 8 + 2 + len("héllo"))
	if writer.Offset() != wantOffset {
		t.Errorf("writer offset = %d, want %d", writer.Offset(), wantOffset)
	}

	reader := NewReader(&buffer)
	if value, err := reader.ReadU8(); err != nil || value != 0xAB {
		t.Errorf("ReadU8 = %#x, %v", value, err)
	}
	if value, err := reader.ReadI8(); err != nil || value != -5 {
		t.Errorf("ReadI8 = %d, %v", value, err)
	}
	if value, err := reader.ReadI16(); err != nil || value != -2 {
		t.Errorf("ReadI16 = %d, %v", value, err)
	}
	if value, err := reader.ReadU16(); err != nil || value != 0xBEEF {
		t.Errorf("ReadU16 = %#x, %v", value, err)
	}
	if value, err := reader.ReadI32(); err != nil || value != 42 {
		t.Errorf("ReadI32 = %d, %v", value, err)
	}
	if value, err := reader.ReadI64(); err != nil || value != math.MinInt64 {
		t.Errorf("ReadI64 = %d, %v", value, err)
	}
	if value, err := reader.ReadF32(); err != nil || value != 1.5 {
		t.Errorf("ReadF32 = %v, %v", value, err)
	}
	if value, err := reader.ReadF64(); err != nil || value != -0.25 {
		t.Errorf("ReadF64 = %v, %v", value, err)
	}
	if value, err := reader.ReadString16(); err != nil || value != "héllo" {
		t.Errorf("ReadString16 = %q, %v", value, err)
	}
	if reader.Offset() != wantOffset {
		t.Errorf("reader offset = %d, want %d", reader.Offset(), wantOffset)
	}
}

func TestBigEndianLayout(t *testing.T) {
	var buffer bytes.Buffer
	writer := NewWriter(&buffer)
	writer.WriteI32(0x01020304)
	writer.WriteU16(0x0506)
	writer.Flush()

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	if !bytes.Equal(buffer.Bytes(), want) {
		t.Errorf("layout = % x, want % x", buffer.Bytes(), want)
	}
}

func TestReaderCleanEOF(t *testing.T) {
	reader := NewReader(bytes.NewReader(nil))
	_, err := reader.ReadU8()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("ReadU8 at end = %v, want io.EOF", err)
	}

	more, err := reader.Peek()
	if err != nil || more {
		t.Errorf("Peek at end = %v, %v; want false, nil", more, err)
	}
}

func TestReaderTruncatedField(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Reader) error
	}{
		{"i32 from 3 bytes", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.ReadI32(); return err }},
		{"i64 from nothing", nil, func(r *Reader) error { _, err := r.ReadI64(); return err }},
		{"string declares 10 supplies 3", []byte{0, 10, 'a', 'b', 'c'}, func(r *Reader) error { _, err := r.ReadString16(); return err }},
		{"bytes from nothing", nil, func(r *Reader) error { _, err := r.ReadBytes(4); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewReader(bytes.NewReader(tt.data)))
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("error = %v, want io.ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestReadBytesLargeDeclaredLength(t *testing.T) {
	// A length far larger than the data must fail with truncation
	// rather than allocate the whole declared size.
	reader := NewReader(bytes.NewReader(make([]byte, 100)))
	_, err := reader.ReadBytes(math.MaxInt32)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadBytes = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReadBytesChunked(t *testing.T) {
	data := bytes.Repeat([]byte{0x5A}, readChunkSize*2+17)
	reader := NewReader(bytes.NewReader(data))
	got, err := reader.ReadBytes(len(data))
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("chunked read returned different bytes")
	}
}

func TestReadBytesNegative(t *testing.T) {
	reader := NewReader(bytes.NewReader(nil))
	if _, err := reader.ReadBytes(-1); err == nil {
		t.Error("ReadBytes(-1) should fail")
	}
}

func TestWriteString16TooLong(t *testing.T) {
	var buffer bytes.Buffer
	writer := NewWriter(&buffer)
	err := writer.WriteString16(strings.Repeat("x", MaxString16+1))
	if err == nil {
		t.Fatal("WriteString16 should reject strings over the 16-bit limit")
	}
	writer.Flush()
	if buffer.Len() != 0 {
		t.Errorf("rejected string wrote %d bytes", buffer.Len())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterStickyError(t *testing.T) {
	writer := NewWriter(failingWriter{})
	writer.Write(make([]byte, 8192))
	first := writer.Err()
	if first == nil {
		t.Fatal("expected a write error once the buffer spilled")
	}
	if err := writer.WriteU8(1); err != first {
		t.Errorf("later write returned %v, want sticky %v", err, first)
	}
	if err := writer.Flush(); err != first {
		t.Errorf("Flush returned %v, want sticky %v", err, first)
	}
}

func TestWriterResetDiscardsBuffered(t *testing.T) {
	var first, second bytes.Buffer
	writer := NewWriter(&first)
	writer.WriteU16(0xdead)
	writer.Reset(&second)
	if writer.Offset() != 0 {
		t.Errorf("Offset after Reset = %d, want 0", writer.Offset())
	}
	writer.WriteU8(0x01)
	if err := writer.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if first.Len() != 0 {
		t.Errorf("discarded bytes reached the first sink: %x", first.Bytes())
	}
	if !bytes.Equal(second.Bytes(), []byte{0x01}) {
		t.Errorf("second sink = %x, want 01", second.Bytes())
	}

	failing := NewWriter(failingWriter{})
	failing.Write(make([]byte, 8192))
	if failing.Err() == nil {
		t.Fatal("expected a write error once the buffer spilled")
	}
	failing.Reset(&second)
	if failing.Err() != nil {
		t.Errorf("Err after Reset = %v, want nil", failing.Err())
	}
}
