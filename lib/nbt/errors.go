// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every error returned by the decoder and encoder
// carries exactly one of ErrTruncated, ErrRead, ErrStructural,
// ErrUnsupportedDiscriminator, ErrEncodingConstraint, or
// ErrObjectNotAllowed as its category. ErrDepthLimit is never a
// category; it is attached as the cause, so a depth violation matches
// both it and its category via errors.Is.
var (
	// ErrTruncated means the stream ended before a field it declared
	// was complete.
	ErrTruncated = errors.New("truncated input")

	// ErrRead means the underlying reader failed with something other
	// than end of stream, such as a corrupt compressed stream. The
	// reader's error is the cause.
	ErrRead = errors.New("reading input")

	// ErrStructural means the bytes were readable but described an
	// invalid tree: TAG_End at the top level, an End or mismatched item
	// in a list, a negative length, or nesting beyond the depth limit.
	ErrStructural = errors.New("structural violation")

	// ErrUnsupportedDiscriminator means a discriminator is outside the
	// registry. The decoder reports it only where it cannot continue
	// (a list element kind); a named top-level or compound child with
	// an unknown discriminator decodes to [Unknown] instead.
	ErrUnsupportedDiscriminator = errors.New("unsupported discriminator")

	// ErrEncodingConstraint means a value cannot be written: a named
	// TAG_End, a string or name longer than 65535 bytes, an array
	// longer than a 32-bit count allows.
	ErrEncodingConstraint = errors.New("encoding constraint violation")

	// ErrDepthLimit is the cause attached to a structural error when
	// nesting exceeds the configured maximum depth.
	ErrDepthLimit = errors.New("nesting depth limit exceeded")

	// ErrObjectNotAllowed means an Object or ObjectArray named a type
	// that is not in the configured [ObjectRegistry].
	ErrObjectNotAllowed = errors.New("object type not allowed")
)

// DecodeError is a decode failure with positional context. Category is
// one of the package's Err* sentinels; Cause, when set, is the
// underlying error (for example io.ErrUnexpectedEOF or a codec error).
type DecodeError struct {
	Category      error
	Detail        string
	Discriminator byte
	Depth         int
	Offset        int64
	Cause         error
}

func (e *DecodeError) Error() string {
	var builder strings.Builder
	builder.WriteString("nbt: decode: ")
	builder.WriteString(e.Category.Error())
	if e.Detail != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Detail)
	}
	fmt.Fprintf(&builder, " (discriminator %d, depth %d, offset %d)", e.Discriminator, e.Depth, e.Offset)
	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}
	return builder.String()
}

// Unwrap exposes both the category and the cause to errors.Is and
// errors.As.
func (e *DecodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Category}
	}
	return []error{e.Category, e.Cause}
}

// EncodeError is an encode failure. Path locates the offending tag
// from the root, in the form root.child[3].leaf.
type EncodeError struct {
	Category error
	Detail   string
	Path     string
	Depth    int
	Cause    error
}

func (e *EncodeError) Error() string {
	var builder strings.Builder
	builder.WriteString("nbt: encode: ")
	builder.WriteString(e.Category.Error())
	if e.Detail != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Detail)
	}
	if e.Path != "" {
		fmt.Fprintf(&builder, " (at %s)", e.Path)
	}
	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}
	return builder.String()
}

// Unwrap exposes both the category and the cause.
func (e *EncodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Category}
	}
	return []error{e.Category, e.Cause}
}
