// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/nbt/lib/codec"
	"github.com/bureau-foundation/nbt/lib/nbt"
)

// rawDocument is Document with the value left undecoded until the
// kind is known.
type rawDocument struct {
	Type          string          `json:"type"`
	Name          string          `json:"name"`
	Value         json.RawMessage `json:"value"`
	Discriminator *uint8          `json:"discriminator"`
}

type rawList struct {
	Element string            `json:"element"`
	Items   []json.RawMessage `json:"items"`
}

type rawObject struct {
	ObjectType string            `json:"object_type"`
	Data       json.RawMessage   `json:"data"`
	Items      []json.RawMessage `json:"items"`
}

// parser holds state shared across one document conversion.
type parser struct {
	objects *nbt.ObjectRegistry
}

// decodeStrict decodes data into target, rejecting unknown fields and
// keeping numbers as json.Number.
func decodeStrict(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidDocument, path, fmt.Sprintf(format, args...))
}

// parseDocuments parses one document, or an array of documents for a
// stream of several top-level tags, from JSON or JSONC.
func parseDocuments(data []byte, objects *nbt.ObjectRegistry) ([]nbt.Tag, error) {
	cleaned := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDocument)
	}

	var raws []rawDocument
	if cleaned[0] == '[' {
		if err := decodeStrict(cleaned, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	} else {
		var raw rawDocument
		if err := decodeStrict(cleaned, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		raws = []rawDocument{raw}
	}

	parse := parser{objects: objects}
	tags := make([]nbt.Tag, 0, len(raws))
	for index, raw := range raws {
		tag, err := parse.tag(raw, fmt.Sprintf("[%d]", index))
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (p parser) tag(raw rawDocument, parent string) (nbt.Tag, error) {
	path := parent + "." + raw.Name
	kind, err := nbt.ParseKind(raw.Type)
	if err != nil {
		return nbt.Tag{}, invalid(path, "%v", err)
	}
	switch kind {
	case nbt.KindEnd:
		return nbt.Tag{}, invalid(path, "TAG_End cannot appear as a named tag")
	case nbt.KindUnknown:
		return nbt.Tag{}, invalid(path, "unknown tags cannot be converted back to binary")
	}
	if raw.Value == nil {
		return nbt.Tag{}, invalid(path, "missing value")
	}
	value, err := p.payload(kind, raw.Value, path)
	if err != nil {
		return nbt.Tag{}, err
	}
	return nbt.Tag{Name: raw.Name, Value: value}, nil
}

func (p parser) payload(kind nbt.Kind, raw json.RawMessage, path string) (nbt.Value, error) {
	switch kind {
	case nbt.KindByte:
		value, err := parseInt(raw, 8, path)
		return nbt.Byte(value), err
	case nbt.KindShort:
		value, err := parseInt(raw, 16, path)
		return nbt.Short(value), err
	case nbt.KindInt:
		value, err := parseInt(raw, 32, path)
		return nbt.Int(value), err
	case nbt.KindLong:
		value, err := parseInt(raw, 64, path)
		return nbt.Long(value), err
	case nbt.KindFloat:
		value, err := parseFloat(raw, 32, path)
		return nbt.Float(value), err
	case nbt.KindDouble:
		value, err := parseFloat(raw, 64, path)
		return nbt.Double(value), err
	case nbt.KindString:
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, invalid(path, "string: %v", err)
		}
		return nbt.String(value), nil

	case nbt.KindByteArray:
		values, err := parseArray(raw, path, func(element json.RawMessage, elementPath string) (byte, error) {
			value, err := parseIntRange(element, math.MinInt8, math.MaxUint8, elementPath)
			return byte(value), err
		})
		return nbt.ByteArray(values), err
	case nbt.KindShortArray:
		values, err := parseArray(raw, path, func(element json.RawMessage, elementPath string) (int16, error) {
			value, err := parseInt(element, 16, elementPath)
			return int16(value), err
		})
		return nbt.ShortArray(values), err
	case nbt.KindIntArray:
		values, err := parseArray(raw, path, func(element json.RawMessage, elementPath string) (int32, error) {
			value, err := parseInt(element, 32, elementPath)
			return int32(value), err
		})
		return nbt.IntArray(values), err
	case nbt.KindLongArray:
		values, err := parseArray(raw, path, func(element json.RawMessage, elementPath string) (int64, error) {
			return parseInt(element, 64, elementPath)
		})
		return nbt.LongArray(values), err
	case nbt.KindFloatArray:
		values, err := parseArray(raw, path, func(element json.RawMessage, elementPath string) (float32, error) {
			value, err := parseFloat(element, 32, elementPath)
			return float32(value), err
		})
		return nbt.FloatArray(values), err
	case nbt.KindDoubleArray:
		values, err := parseArray(raw, path, func(element json.RawMessage, elementPath string) (float64, error) {
			return parseFloat(element, 64, elementPath)
		})
		return nbt.DoubleArray(values), err
	case nbt.KindStringArray:
		values, err := parseArray(raw, path, func(element json.RawMessage, elementPath string) (string, error) {
			var value string
			if err := json.Unmarshal(element, &value); err != nil {
				return "", invalid(elementPath, "string: %v", err)
			}
			return value, nil
		})
		return nbt.StringArray(values), err

	case nbt.KindList:
		return p.list(raw, path)
	case nbt.KindCompound:
		return p.compound(raw, path)
	case nbt.KindObject:
		return p.object(raw, path)
	case nbt.KindObjectArray:
		return p.objectArray(raw, path)

	default:
		return nil, invalid(path, "%s has no payload", kind)
	}
}

func (p parser) list(raw json.RawMessage, path string) (nbt.Value, error) {
	var document rawList
	if err := decodeStrict(raw, &document); err != nil {
		return nil, invalid(path, "list: %v", err)
	}
	element, err := nbt.ParseKind(document.Element)
	if err != nil {
		return nil, invalid(path, "list element: %v", err)
	}
	items := make([]nbt.Value, 0, len(document.Items))
	for index, item := range document.Items {
		value, err := p.payload(element, item, fmt.Sprintf("%s[%d]", path, index))
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	list, err := nbt.NewList(element, items...)
	if err != nil {
		return nil, invalid(path, "%v", err)
	}
	return list, nil
}

func (p parser) compound(raw json.RawMessage, path string) (nbt.Value, error) {
	var children []rawDocument
	if err := decodeStrict(raw, &children); err != nil {
		return nil, invalid(path, "compound: %v", err)
	}
	compound := nbt.NewCompound()
	for _, child := range children {
		if compound.Has(child.Name) {
			return nil, invalid(path, "duplicate child name %q", child.Name)
		}
		tag, err := p.tag(child, path)
		if err != nil {
			return nil, err
		}
		compound.Put(tag)
	}
	return compound, nil
}

// objectValue converts plain document data back into the codec's
// value by way of its CBOR encoding.
func (p parser) objectValue(objectCodec nbt.ObjectCodec, raw json.RawMessage, path string) (any, error) {
	var data any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		return nil, invalid(path, "object data: %v", err)
	}
	encoded, err := codec.Marshal(plainNumbers(data))
	if err != nil {
		return nil, invalid(path, "object data: %v", err)
	}
	value, err := objectCodec.UnmarshalObject(encoded)
	if err != nil {
		return nil, invalid(path, "%v", err)
	}
	return value, nil
}

func (p parser) objectCodec(typeName, path string) (nbt.ObjectCodec, error) {
	objectCodec, ok := p.objects.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s: object type %q is not registered", nbt.ErrObjectNotAllowed, path, typeName)
	}
	return objectCodec, nil
}

func (p parser) object(raw json.RawMessage, path string) (nbt.Value, error) {
	var document rawObject
	if err := decodeStrict(raw, &document); err != nil {
		return nil, invalid(path, "object: %v", err)
	}
	objectCodec, err := p.objectCodec(document.ObjectType, path)
	if err != nil {
		return nil, err
	}
	if document.Data == nil {
		return nil, invalid(path, "object: missing data")
	}
	value, err := p.objectValue(objectCodec, document.Data, path)
	if err != nil {
		return nil, err
	}
	return nbt.Object{TypeName: document.ObjectType, Value: value}, nil
}

func (p parser) objectArray(raw json.RawMessage, path string) (nbt.Value, error) {
	var document rawObject
	if err := decodeStrict(raw, &document); err != nil {
		return nil, invalid(path, "object array: %v", err)
	}
	objectCodec, err := p.objectCodec(document.ObjectType, path)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(document.Items))
	for index, item := range document.Items {
		value, err := p.objectValue(objectCodec, item, fmt.Sprintf("%s[%d]", path, index))
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return nbt.ObjectArray{TypeName: document.ObjectType, Values: values}, nil
}

// plainNumbers replaces json.Number with int64 where the literal is an
// integer and float64 otherwise, so the CBOR re-encoding carries real
// numbers rather than strings.
func plainNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer
		}
		if float, err := typed.Float64(); err == nil {
			return float
		}
		return typed.String()
	case map[string]any:
		for key, element := range typed {
			typed[key] = plainNumbers(element)
		}
		return typed
	case []any:
		for index, element := range typed {
			typed[index] = plainNumbers(element)
		}
		return typed
	default:
		return value
	}
}

func parseArray[T any](raw json.RawMessage, path string, parseElement func(json.RawMessage, string) (T, error)) ([]T, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, invalid(path, "array: %v", err)
	}
	values := make([]T, 0, len(elements))
	for index, element := range elements {
		value, err := parseElement(element, fmt.Sprintf("%s[%d]", path, index))
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func parseNumber(raw json.RawMessage, path string) (json.Number, error) {
	var number json.Number
	if err := decodeStrict(raw, &number); err != nil {
		return "", invalid(path, "expected a number, got %s", raw)
	}
	return number, nil
}

func parseInt(raw json.RawMessage, bits int, path string) (int64, error) {
	number, err := parseNumber(raw, path)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(number.String(), 10, bits)
	if err != nil {
		return 0, invalid(path, "%d-bit integer: %v", bits, err)
	}
	return value, nil
}

// parseIntRange accepts integers in [low, high]. Byte arrays take both
// signed and unsigned byte notation.
func parseIntRange(raw json.RawMessage, low, high int64, path string) (int64, error) {
	value, err := parseInt(raw, 64, path)
	if err != nil {
		return 0, err
	}
	if value < low || value > high {
		return 0, invalid(path, "%d out of range [%d, %d]", value, low, high)
	}
	return value, nil
}

func parseFloat(raw json.RawMessage, bits int, path string) (float64, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		switch text {
		case notANumber:
			return math.NaN(), nil
		case positiveInfinity:
			return math.Inf(1), nil
		case negativeInfinity:
			return math.Inf(-1), nil
		default:
			return 0, invalid(path, "float string %q is not NaN, Infinity, or -Infinity", text)
		}
	}
	number, err := parseNumber(raw, path)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(number.String(), bits)
	if err != nil {
		return 0, invalid(path, "%d-bit float: %v", bits, err)
	}
	return value, nil
}
