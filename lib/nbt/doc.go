// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbt implements the Named Binary Tag format: a self-describing
// binary encoding of a tree of typed, named values.
//
// A stream holds one or more top-level tags. Each tag is a one-byte
// discriminator, a name (16-bit big-endian length then bytes), and a
// payload whose layout depends on the discriminator. Compounds hold
// named children terminated by a TAG_End byte; lists hold unnamed
// payloads that all share one element kind declared in the list
// header. All multi-byte integers and floats are big-endian.
//
// # Tree model
//
// [Tag] pairs a name with a [Value]. Value is a closed set of types,
// one per [Kind]: scalars ([Byte], [Int], [Double], ...), primitive
// arrays ([ByteArray], [LongArray], [StringArray], ...), [List],
// [*Compound], [Object], [ObjectArray], and the two markers [End] and
// [Unknown]. A [Compound] keeps insertion order, so a decoded tree
// re-encodes to the bytes it came from.
//
// # Reading and writing
//
//	tag, err := nbt.Unmarshal(data, nbt.Options{})
//	data, err := nbt.Marshal(tag, nbt.Options{})
//
// [Decoder] and [Encoder] work on streams; Decoder.Decode returns
// io.EOF when the stream ends cleanly between tags. Neither handles
// compression; see lib/compress and lib/nbtfile.
//
// # Unknown discriminators
//
// A named tag with a discriminator the registry does not assign
// decodes to an [Unknown] value carrying the discriminator and name.
// Its payload is not consumed, so whatever follows in the stream is
// likely misread. The encoder skips Unknown values. Both log a Warn
// record through Options.Logger.
//
// # Objects
//
// TAG_Object and TAG_Object_Array carry application values as
// length-prefixed bytes produced by an [ObjectCodec]. Codecs are
// registered by type name in an [ObjectRegistry]; a type name that is
// not registered is refused with [ErrObjectNotAllowed]. Nothing is
// ever instantiated from a name read off the wire.
//
// # Errors
//
// Failures are [*DecodeError] or [*EncodeError] values. Each matches
// one category sentinel via errors.Is: [ErrTruncated], [ErrRead],
// [ErrStructural], [ErrUnsupportedDiscriminator],
// [ErrEncodingConstraint], or [ErrObjectNotAllowed]. Depth-limit
// violations carry [ErrDepthLimit] as their cause and match it too.
package nbt
