// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/bureau-foundation/nbt/lib/tagstream"
)

// Encoder writes named tags to a byte stream. Like Decoder, it is not
// safe for concurrent use.
type Encoder struct {
	sink     io.Writer
	staging  bytes.Buffer
	writer   *tagstream.Writer
	written  int64
	err      error
	maxDepth int
	objects  *ObjectRegistry
	logger   *slog.Logger
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer, options Options) *Encoder {
	encoder := &Encoder{
		sink:     w,
		maxDepth: options.maxDepth(),
		objects:  options.Objects,
		logger:   options.logger(),
	}
	encoder.writer = tagstream.NewWriter(&encoder.staging)
	return encoder
}

// Encode writes tag as a top-level named tag. A tag whose value is
// Unknown produces no bytes at all. A top-level TAG_End is refused.
//
// Each tag is staged in memory and handed to the underlying writer in
// a single Write only once it has encoded completely, so a failed
// Encode writes nothing and the Encoder stays usable. A failure of the
// underlying writer is sticky.
func (e *Encoder) Encode(tag Tag) error {
	if e.err != nil {
		return &EncodeError{Category: ErrEncodingConstraint, Detail: "writer already failed", Cause: e.err}
	}
	if tag.Kind() == KindEnd {
		return &EncodeError{
			Category: ErrEncodingConstraint,
			Detail:   "TAG_End cannot be written as a top-level tag",
			Path:     pathRoot(tag.Name),
		}
	}

	e.staging.Reset()
	e.writer.Reset(&e.staging)
	if err := e.writeTag(tag, 0, pathRoot(tag.Name)); err != nil {
		return err
	}
	if err := e.writer.Flush(); err != nil {
		return &EncodeError{Category: ErrEncodingConstraint, Detail: "staging output", Cause: err}
	}
	if e.staging.Len() == 0 {
		return nil
	}

	count, err := e.sink.Write(e.staging.Bytes())
	e.written += int64(count)
	if err == nil && count < e.staging.Len() {
		err = io.ErrShortWrite
	}
	if err != nil {
		e.err = err
		return &EncodeError{Category: ErrEncodingConstraint, Detail: "writing output", Path: pathRoot(tag.Name), Cause: err}
	}
	return nil
}

// Encode writes one tag to w with default options.
func Encode(w io.Writer, tag Tag) error {
	return NewEncoder(w, Options{}).Encode(tag)
}

// Marshal encodes tag into a new byte slice.
func Marshal(tag Tag, options Options) ([]byte, error) {
	var buffer bytes.Buffer
	if err := NewEncoder(&buffer, options).Encode(tag); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func pathRoot(name string) string {
	if name == "" {
		return "<root>"
	}
	return name
}

func pathChild(parent, name string) string {
	return parent + "." + name
}

func pathIndex(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

func (e *Encoder) fail(category error, path string, depth int, format string, args ...any) error {
	return &EncodeError{Category: category, Detail: fmt.Sprintf(format, args...), Path: path, Depth: depth}
}

// writeErr converts a sticky writer error into an EncodeError.
func (e *Encoder) writeErr(path string, depth int) error {
	if err := e.writer.Err(); err != nil {
		return &EncodeError{Category: ErrEncodingConstraint, Detail: "writing output", Path: path, Depth: depth, Cause: err}
	}
	return nil
}

// writeTag writes discriminator, name, and payload. Unknown values are
// dropped with a warning.
func (e *Encoder) writeTag(tag Tag, depth int, path string) error {
	kind := tag.Kind()
	if kind == KindUnknown {
		e.logger.Warn("skipping unknown tag on encode",
			"name", tag.Name,
			"discriminator", tag.Value.(Unknown).Discriminator,
			"depth", depth,
			"offset", e.written+e.writer.Offset(),
		)
		return nil
	}
	if len(tag.Name) > tagstream.MaxString16 {
		return e.fail(ErrEncodingConstraint, path, depth, "tag name is %d bytes, limit %d", len(tag.Name), tagstream.MaxString16)
	}

	discriminator, _ := Discriminator(kind)
	e.writer.WriteU8(discriminator)
	if kind == KindEnd {
		return e.writeErr(path, depth)
	}
	if err := e.writer.WriteString16(tag.Name); err != nil {
		return e.fail(ErrEncodingConstraint, path, depth, "writing tag name: %v", err)
	}
	if err := e.writePayload(tag.Value, depth, path); err != nil {
		return err
	}
	return e.writeErr(path, depth)
}

// writeCount writes a 32-bit element count.
func (e *Encoder) writeCount(count int, path string, depth int) error {
	if count > math.MaxInt32 {
		return e.fail(ErrEncodingConstraint, path, depth, "%d elements exceed the 32-bit count limit", count)
	}
	e.writer.WriteI32(int32(count))
	return nil
}

// writeArray writes a count followed by each element. Write errors are
// sticky on the writer and surface from writeTag.
func writeArray[T any](e *Encoder, values []T, path string, depth int, writeElement func(T) error) error {
	if err := e.writeCount(len(values), path, depth); err != nil {
		return err
	}
	for _, value := range values {
		_ = writeElement(value)
	}
	return nil
}

// writePayload writes the payload only, as used for list items and
// after a tag header.
func (e *Encoder) writePayload(value Value, depth int, path string) error {
	switch typed := value.(type) {
	case Byte:
		e.writer.WriteI8(int8(typed))
	case Short:
		e.writer.WriteI16(int16(typed))
	case Int:
		e.writer.WriteI32(int32(typed))
	case Long:
		e.writer.WriteI64(int64(typed))
	case Float:
		e.writer.WriteF32(float32(typed))
	case Double:
		e.writer.WriteF64(float64(typed))
	case String:
		if err := e.writer.WriteString16(string(typed)); err != nil {
			return e.fail(ErrEncodingConstraint, path, depth, "%v", err)
		}

	case ByteArray:
		if err := e.writeCount(len(typed), path, depth); err != nil {
			return err
		}
		e.writer.Write(typed)
	case ShortArray:
		return writeArray(e, typed, path, depth, e.writer.WriteI16)
	case IntArray:
		return writeArray(e, typed, path, depth, e.writer.WriteI32)
	case LongArray:
		return writeArray(e, typed, path, depth, e.writer.WriteI64)
	case FloatArray:
		return writeArray(e, typed, path, depth, e.writer.WriteF32)
	case DoubleArray:
		return writeArray(e, typed, path, depth, e.writer.WriteF64)
	case StringArray:
		for index, element := range typed {
			if len(element) > tagstream.MaxString16 {
				return e.fail(ErrEncodingConstraint, pathIndex(path, index), depth,
					"string is %d bytes, limit %d", len(element), tagstream.MaxString16)
			}
		}
		return writeArray(e, typed, path, depth, e.writer.WriteString16)

	case List:
		return e.writeList(typed, depth, path)
	case *Compound:
		return e.writeCompound(typed, depth, path)
	case Object:
		return e.writeObject(typed, depth, path)
	case ObjectArray:
		return e.writeObjectArray(typed, depth, path)

	case End:
		return e.fail(ErrEncodingConstraint, path, depth, "TAG_End has no payload")
	case Unknown:
		return e.fail(ErrEncodingConstraint, path, depth, "unknown tag has no payload")
	case nil:
		return e.fail(ErrEncodingConstraint, path, depth, "missing value")
	default:
		panic(fmt.Sprintf("nbt: writePayload: unhandled value type %T", value))
	}
	return nil
}

func (e *Encoder) enter(path string, childDepth int) error {
	if e.maxDepth >= 0 && childDepth > e.maxDepth {
		return &EncodeError{
			Category: ErrEncodingConstraint,
			Detail:   fmt.Sprintf("children at depth %d exceed limit %d", childDepth, e.maxDepth),
			Path:     path,
			Depth:    childDepth - 1,
			Cause:    ErrDepthLimit,
		}
	}
	return nil
}

// writeList validates homogeneity before writing the list header.
func (e *Encoder) writeList(list List, depth int, path string) error {
	if err := e.enter(path, depth+1); err != nil {
		return err
	}
	if err := list.Validate(); err != nil {
		return &EncodeError{Category: ErrEncodingConstraint, Detail: "invalid list", Path: path, Depth: depth, Cause: err}
	}

	discriminator, _ := Discriminator(list.Element)
	e.writer.WriteU8(discriminator)
	if err := e.writeCount(len(list.Items), path, depth); err != nil {
		return err
	}
	for index, item := range list.Items {
		if err := e.writePayload(item, depth+1, pathIndex(path, index)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeCompound(compound *Compound, depth int, path string) error {
	if err := e.enter(path, depth+1); err != nil {
		return err
	}
	for tag := range compound.Tags() {
		if tag.Kind() == KindEnd {
			return e.fail(ErrEncodingConstraint, pathChild(path, tag.Name), depth+1,
				"TAG_End cannot be a named compound child")
		}
		if err := e.writeTag(tag, depth+1, pathChild(path, tag.Name)); err != nil {
			return err
		}
	}
	e.writer.WriteU8(0)
	return nil
}

// objectCodec resolves typeName against the allow-list.
func (e *Encoder) objectCodec(typeName, path string, depth int) (ObjectCodec, error) {
	objectCodec, ok := e.objects.Lookup(typeName)
	if !ok {
		return nil, e.fail(ErrObjectNotAllowed, path, depth, "object type %q is not registered", typeName)
	}
	if len(typeName) > tagstream.MaxString16 {
		return nil, e.fail(ErrEncodingConstraint, path, depth, "object type name is %d bytes", len(typeName))
	}
	return objectCodec, nil
}

func (e *Encoder) marshalObject(objectCodec ObjectCodec, value any, path string, depth int) ([]byte, error) {
	data, err := objectCodec.MarshalObject(value)
	if err != nil {
		return nil, &EncodeError{Category: ErrEncodingConstraint, Detail: "object codec failed", Path: path, Depth: depth, Cause: err}
	}
	if len(data) > math.MaxInt32 {
		return nil, e.fail(ErrEncodingConstraint, path, depth, "object data is %d bytes", len(data))
	}
	return data, nil
}

// writeObject marshals before writing anything so a codec failure
// leaves no partial header.
func (e *Encoder) writeObject(object Object, depth int, path string) error {
	objectCodec, err := e.objectCodec(object.TypeName, path, depth)
	if err != nil {
		return err
	}
	data, err := e.marshalObject(objectCodec, object.Value, path, depth)
	if err != nil {
		return err
	}
	_ = e.writer.WriteString16(object.TypeName)
	e.writer.WriteI32(int32(len(data)))
	e.writer.Write(data)
	return nil
}

func (e *Encoder) writeObjectArray(array ObjectArray, depth int, path string) error {
	objectCodec, err := e.objectCodec(array.TypeName, path, depth)
	if err != nil {
		return err
	}
	if len(array.Values) > math.MaxInt32 {
		return e.fail(ErrEncodingConstraint, path, depth, "%d objects exceed the 32-bit count limit", len(array.Values))
	}
	encoded := make([][]byte, len(array.Values))
	for index, value := range array.Values {
		data, err := e.marshalObject(objectCodec, value, pathIndex(path, index), depth)
		if err != nil {
			return err
		}
		encoded[index] = data
	}
	_ = e.writer.WriteString16(array.TypeName)
	e.writer.WriteI32(int32(len(encoded)))
	for _, data := range encoded {
		e.writer.WriteI32(int32(len(data)))
		e.writer.Write(data)
	}
	return nil
}
