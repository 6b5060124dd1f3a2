// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the shared CBOR configuration used wherever
// the tag tooling emits or consumes CBOR.
//
// Two places depend on it:
//
//   - Object payloads. [nbt.CBORCodec] carries registered application
//     types inside TAG_Object and TAG_Object_Array as CBOR bytes.
//   - Tree export. lib/nbtjson documents can be written as CBOR for
//     consumers that prefer a binary interchange format, and the CLI
//     can print them in diagnostic notation.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same logical value always produces identical bytes. That property
// carries through to TAG_Object payloads, which keeps re-encoded trees
// byte-identical and their tree hashes stable.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Struct fields use `cbor` tags when a type only ever travels as CBOR
// and `json` tags when it is shared with JSON output; fxamacker/cbor
// reads `json` tags as a fallback.
package codec
