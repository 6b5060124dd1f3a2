// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import "fmt"

// Filter identifies a stream compression format.
type Filter uint8

const (
	// None passes bytes through unchanged.
	None Filter = iota

	// Gzip is RFC 1952 gzip, the conventional container for tag
	// files.
	Gzip

	// Zlib is an RFC 1950 zlib stream.
	Zlib

	// Zstd is a Zstandard frame.
	Zstd

	// LZ4 is an LZ4 frame (not block) stream.
	LZ4
)

// String returns the configuration name of the filter.
func (f Filter) String() string {
	switch f {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFilter parses a filter from its configuration name.
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression filter: %q", name)
	}
}

// Filters returns every filter in declaration order.
func Filters() []Filter {
	return []Filter{None, Gzip, Zlib, Zstd, LZ4}
}

// MarshalText implements encoding.TextMarshaler so JSON reports carry
// the filter name.
func (f Filter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Filter) UnmarshalText(text []byte) error {
	parsed, err := ParseFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
