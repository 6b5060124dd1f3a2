// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtjson

import (
	"errors"
	"fmt"
	"math"

	"github.com/bureau-foundation/nbt/lib/codec"
	"github.com/bureau-foundation/nbt/lib/nbt"
)

// ErrInvalidDocument is returned for documents that do not describe a
// valid tag tree.
var ErrInvalidDocument = errors.New("invalid tag document")

// Document is one named tag.
type Document struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	Value         any    `json:"value,omitempty"`
	Discriminator *uint8 `json:"discriminator,omitempty"`
}

// ListDocument is the value of a list tag.
type ListDocument struct {
	Element string `json:"element"`
	Items   []any  `json:"items"`
}

// ObjectDocument is the value of an object tag.
type ObjectDocument struct {
	ObjectType string `json:"object_type"`
	Data       any    `json:"data"`
}

// ObjectArrayDocument is the value of an object array tag.
type ObjectArrayDocument struct {
	ObjectType string `json:"object_type"`
	Items      []any  `json:"items"`
}

// Strings used for non-finite floats.
const (
	notANumber       = "NaN"
	positiveInfinity = "Infinity"
	negativeInfinity = "-Infinity"
)

// ToDocument converts a tag to its document form. Object payloads are
// rendered through objects; nil refuses every object.
func ToDocument(tag nbt.Tag, objects *nbt.ObjectRegistry) (Document, error) {
	kind := tag.Kind()
	if kind == nbt.KindEnd {
		return Document{}, fmt.Errorf("%w: %q: TAG_End has no document form", ErrInvalidDocument, tag.Name)
	}
	if unknown, ok := tag.Value.(nbt.Unknown); ok {
		discriminator := unknown.Discriminator
		return Document{Type: kind.String(), Name: tag.Name, Discriminator: &discriminator}, nil
	}
	value, err := toPayload(tag.Value, objects, tag.Name)
	if err != nil {
		return Document{}, err
	}
	return Document{Type: kind.String(), Name: tag.Name, Value: value}, nil
}

func toFloat[T float32 | float64](value T) any {
	switch {
	case math.IsNaN(float64(value)):
		return notANumber
	case math.IsInf(float64(value), 1):
		return positiveInfinity
	case math.IsInf(float64(value), -1):
		return negativeInfinity
	default:
		return value
	}
}

func toFloats[T float32 | float64](values []T) []any {
	converted := make([]any, len(values))
	for index, value := range values {
		converted[index] = toFloat(value)
	}
	return converted
}

// nonNil keeps empty arrays as [] rather than null.
func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

func toPayload(value nbt.Value, objects *nbt.ObjectRegistry, path string) (any, error) {
	switch typed := value.(type) {
	case nbt.Byte:
		return int64(typed), nil
	case nbt.Short:
		return int64(typed), nil
	case nbt.Int:
		return int64(typed), nil
	case nbt.Long:
		return int64(typed), nil
	case nbt.Float:
		return toFloat(float32(typed)), nil
	case nbt.Double:
		return toFloat(float64(typed)), nil
	case nbt.String:
		return string(typed), nil

	case nbt.ByteArray:
		converted := make([]int, len(typed))
		for index, b := range typed {
			converted[index] = int(b)
		}
		return converted, nil
	case nbt.ShortArray:
		return nonNil([]int16(typed)), nil
	case nbt.IntArray:
		return nonNil([]int32(typed)), nil
	case nbt.LongArray:
		return nonNil([]int64(typed)), nil
	case nbt.FloatArray:
		return toFloats([]float32(typed)), nil
	case nbt.DoubleArray:
		return toFloats([]float64(typed)), nil
	case nbt.StringArray:
		return nonNil([]string(typed)), nil

	case nbt.List:
		items := make([]any, len(typed.Items))
		for index, item := range typed.Items {
			converted, err := toPayload(item, objects, fmt.Sprintf("%s[%d]", path, index))
			if err != nil {
				return nil, err
			}
			items[index] = converted
		}
		return ListDocument{Element: typed.Element.String(), Items: items}, nil

	case *nbt.Compound:
		children := make([]Document, 0, typed.Len())
		for child := range typed.Tags() {
			document, err := ToDocument(child, objects)
			if err != nil {
				return nil, err
			}
			children = append(children, document)
		}
		return children, nil

	case nbt.Object:
		data, err := objectData(objects, typed.TypeName, typed.Value, path)
		if err != nil {
			return nil, err
		}
		return ObjectDocument{ObjectType: typed.TypeName, Data: data}, nil

	case nbt.ObjectArray:
		items := make([]any, len(typed.Values))
		for index, element := range typed.Values {
			data, err := objectData(objects, typed.TypeName, element, fmt.Sprintf("%s[%d]", path, index))
			if err != nil {
				return nil, err
			}
			items[index] = data
		}
		return ObjectArrayDocument{ObjectType: typed.TypeName, Items: items}, nil

	default:
		return nil, fmt.Errorf("%w: %s: %s has no document form", ErrInvalidDocument, path, value.Kind())
	}
}

// objectData renders an object value as the plain data its codec
// produces.
func objectData(objects *nbt.ObjectRegistry, typeName string, value any, path string) (any, error) {
	objectCodec, ok := objects.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s: object type %q is not registered", nbt.ErrObjectNotAllowed, path, typeName)
	}
	encoded, err := objectCodec.MarshalObject(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var data any
	if err := codec.Unmarshal(encoded, &data); err != nil {
		return nil, fmt.Errorf("%s: object payload is not CBOR: %w", path, err)
	}
	return data, nil
}
