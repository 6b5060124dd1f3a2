// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Magic prefixes used by Detect.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// magicLength is how many leading bytes Detect needs to decide: the
// LZ4 magic plus its FLG and BD descriptor bytes.
const magicLength = 6

// Detect identifies the filter from the first bytes of a stream.
// Anything it does not recognize is reported as None.
//
// Raw tag data starts with a tag discriminator, and two of those
// overlap legal compressed headers: 0x08 (TAG_String) is a zlib CMF
// byte and 0x04 (TAG_Long) begins the LZ4 magic. Detect only accepts
// zlib headers whose CMF is not a discriminator, and only accepts the
// LZ4 magic when a well-formed frame descriptor follows it. A raw
// TAG_Long whose 8781-byte name happens to begin with a valid
// descriptor is still read as LZ4; pin the filter to read such data.
func Detect(prefix []byte) Filter {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	case isLZ4Header(prefix):
		return LZ4
	case isZlibHeader(prefix):
		return Zlib
	default:
		return None
	}
}

// isZlibHeader checks the RFC 1950 CMF/FLG pair: deflate method, a
// window of 8 to 32 KiB, and a valid FCHECK. Smaller windows are
// refused because CMF 0x08 is also TAG_String.
func isZlibHeader(prefix []byte) bool {
	if len(prefix) < 2 {
		return false
	}
	method, flags := prefix[0], prefix[1]
	if method&0x0f != 8 || method>>4 < 5 || method>>4 > 7 {
		return false
	}
	return (uint16(method)<<8|uint16(flags))%31 == 0
}

// isLZ4Header checks the frame magic and then the descriptor: FLG
// version 01 with its reserved bit clear, and a BD byte with a block
// size code of 4 to 7 and no reserved bits.
func isLZ4Header(prefix []byte) bool {
	if len(prefix) < magicLength || !bytes.HasPrefix(prefix, lz4Magic) {
		return false
	}
	flg, bd := prefix[4], prefix[5]
	if flg>>6 != 0x01 || flg&0x02 != 0 {
		return false
	}
	if bd&0x8f != 0 {
		return false
	}
	return bd>>4 >= 4
}

// NewReader returns a reader that decompresses r with filter.
func NewReader(r io.Reader, filter Filter) (io.ReadCloser, error) {
	switch filter {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		reader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return reader, nil
	case Zlib:
		reader, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening zlib stream: %w", err)
		}
		return reader, nil
	case Zstd:
		decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unsupported compression filter: %s", filter)
	}
}

// NewDetectingReader peeks at the start of r, selects the filter with
// Detect, and returns the decompressing reader along with the filter
// it chose. An empty stream is reported as None.
func NewDetectingReader(r io.Reader) (io.ReadCloser, Filter, error) {
	buffered := bufio.NewReader(r)
	prefix, err := buffered.Peek(magicLength)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, None, fmt.Errorf("reading stream header: %w", err)
	}
	filter := Detect(prefix)
	reader, err := NewReader(buffered, filter)
	if err != nil {
		return nil, filter, err
	}
	return reader, filter, nil
}

// nopWriteCloser adds a no-op Close to a writer.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer that compresses into w with filter. The
// caller must Close it to finish the compressed stream; Close does not
// close w.
func NewWriter(w io.Writer, filter Filter) (io.WriteCloser, error) {
	switch filter {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	case Zstd:
		encoder, err := zstd.NewWriter(w,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return nil, fmt.Errorf("creating zstd writer: %w", err)
		}
		return encoder, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression filter: %s", filter)
	}
}
