// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtjson

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/nbt/lib/codec"
	"github.com/bureau-foundation/nbt/lib/nbt"
)

// Options configures conversion.
type Options struct {
	// Objects renders and parses Object and ObjectArray values. Nil
	// refuses them.
	Objects *nbt.ObjectRegistry

	// Indent, when non-empty, pretty-prints JSON output with this
	// per-level indent.
	Indent string
}

// Marshal renders tag as a JSON document.
func Marshal(tag nbt.Tag, options Options) ([]byte, error) {
	document, err := ToDocument(tag, options.Objects)
	if err != nil {
		return nil, err
	}
	return marshalJSON(document, options.Indent)
}

// MarshalAll renders several top-level tags as a JSON array of
// documents.
func MarshalAll(tags []nbt.Tag, options Options) ([]byte, error) {
	documents, err := toDocuments(tags, options.Objects)
	if err != nil {
		return nil, err
	}
	return marshalJSON(documents, options.Indent)
}

// MarshalCBOR renders tag's document as deterministic CBOR.
func MarshalCBOR(tag nbt.Tag, options Options) ([]byte, error) {
	document, err := ToDocument(tag, options.Objects)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(document)
}

// MarshalAllCBOR renders several top-level tags as a CBOR array of
// documents.
func MarshalAllCBOR(tags []nbt.Tag, options Options) ([]byte, error) {
	documents, err := toDocuments(tags, options.Objects)
	if err != nil {
		return nil, err
	}
	return codec.Marshal(documents)
}

// Unmarshal parses a single-tag JSON or JSONC document.
func Unmarshal(data []byte, options Options) (nbt.Tag, error) {
	tags, err := parseDocuments(data, options.Objects)
	if err != nil {
		return nbt.Tag{}, err
	}
	if len(tags) != 1 {
		return nbt.Tag{}, fmt.Errorf("%w: expected one tag, found %d", ErrInvalidDocument, len(tags))
	}
	return tags[0], nil
}

// UnmarshalAll parses a document or an array of documents.
func UnmarshalAll(data []byte, options Options) ([]nbt.Tag, error) {
	return parseDocuments(data, options.Objects)
}

func toDocuments(tags []nbt.Tag, objects *nbt.ObjectRegistry) ([]Document, error) {
	documents := make([]Document, 0, len(tags))
	for _, tag := range tags {
		document, err := ToDocument(tag, objects)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}
	return documents, nil
}

func marshalJSON(value any, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(value)
	}
	return json.MarshalIndent(value, "", indent)
}
