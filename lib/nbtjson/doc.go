// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbtjson converts tag trees to and from a typed JSON
// interchange document.
//
// Every tag becomes an object naming its kind explicitly, so the
// document round-trips without guessing widths:
//
//	{"type": "compound", "name": "root", "value": [
//	  {"type": "int", "name": "x", "value": 42},
//	  {"type": "list", "name": "xs", "value": {"element": "int", "items": [1, 2, 3]}}
//	]}
//
// Compound values are arrays, which keeps child order. List items are
// bare payloads in the list's element form. Non-finite floats are the
// strings "NaN", "Infinity", and "-Infinity". An Unknown tag carries
// its discriminator and no value; it cannot be converted back.
// Objects appear as {"object_type": ..., "data": ...}, where data is
// the codec's CBOR payload decoded into plain values, and need an
// [nbt.ObjectRegistry] in both directions.
//
// [Unmarshal] accepts JSONC: comments and trailing commas are stripped
// before parsing. [MarshalCBOR] writes the same document model as
// deterministic CBOR through lib/codec.
package nbtjson
