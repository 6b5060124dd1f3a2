// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package treehash computes content hashes of tag trees.
//
// A tree hash is the BLAKE3 keyed hash of the tree's uncompressed
// binary encoding, so two files holding the same tree hash equal
// regardless of compression filter. Compound order is part of the
// encoding and therefore part of the hash.
package treehash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/nbt/lib/nbt"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// treeDomainKey separates tree hashes from any other BLAKE3 use of
// the same bytes. It is a fixed constant: changing it changes every
// tree hash. The value is the ASCII domain name, zero-padded.
var treeDomainKey = [32]byte{
	'b', 'u', 'r', 'e', 'a', 'u', '.', 'n', 'b', 't', '.', 't', 'r', 'e', 'e',
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(treeDomainKey[:])
	if err != nil {
		panic("treehash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func digest(hasher *blake3.Hasher) Hash {
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// Sum hashes the encoding of tags written in order, as they would
// appear in one uncompressed stream. The tags are encoded straight
// into the hasher without an intermediate buffer.
func Sum(options nbt.Options, tags ...nbt.Tag) (Hash, error) {
	hasher := newHasher()
	encoder := nbt.NewEncoder(hasher, options)
	for _, tag := range tags {
		if err := encoder.Encode(tag); err != nil {
			return Hash{}, err
		}
	}
	return digest(hasher), nil
}

// SumEncoded hashes an already-encoded, uncompressed stream.
func SumEncoded(data []byte) Hash {
	hasher := newHasher()
	hasher.Write(data)
	return digest(hasher)
}

// String returns the hex encoding.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Parse parses a 64-character hex string.
func Parse(text string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return hash, fmt.Errorf("parsing tree hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("parsing tree hash: got %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}
