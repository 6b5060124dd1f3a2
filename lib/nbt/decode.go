// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/nbt/lib/tagstream"
)

// Decoder reads named tags from a byte stream. Each call to Decode
// reads one complete top-level tag. A Decoder holds one stream cursor
// and is not safe for concurrent use; separate Decoders are
// independent.
type Decoder struct {
	reader   *tagstream.Reader
	maxDepth int
	objects  *ObjectRegistry
	logger   *slog.Logger
}

// NewDecoder returns a Decoder reading from r. The stream must already
// be decompressed; see lib/compress and lib/nbtfile for that layer.
func NewDecoder(r io.Reader, options Options) *Decoder {
	return &Decoder{
		reader:   tagstream.NewReader(r),
		maxDepth: options.maxDepth(),
		objects:  options.Objects,
		logger:   options.logger(),
	}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.reader.Offset()
}

// More reports whether the stream has at least one more byte.
func (d *Decoder) More() (bool, error) {
	return d.reader.Peek()
}

// Decode reads one fully named tag at depth 0. At a clean end of
// stream, before any byte of a tag, it returns io.EOF. Any other
// failure is a *DecodeError and no partial tree is returned.
func (d *Decoder) Decode() (Tag, error) {
	more, err := d.reader.Peek()
	if err != nil {
		return Tag{}, d.fail(ErrTruncated, "", 0, 0, err)
	}
	if !more {
		return Tag{}, io.EOF
	}
	return d.readTag(0)
}

// Decode reads one tag from r with default options.
func Decode(r io.Reader) (Tag, error) {
	return NewDecoder(r, Options{}).Decode()
}

// Unmarshal decodes exactly one tag from data. Empty input is a
// truncation error and bytes left after the tag are a structural error.
func Unmarshal(data []byte, options Options) (Tag, error) {
	decoder := NewDecoder(bytes.NewReader(data), options)
	tag, err := decoder.Decode()
	if errors.Is(err, io.EOF) {
		return Tag{}, &DecodeError{Category: ErrTruncated, Detail: "empty input", Cause: io.ErrUnexpectedEOF}
	}
	if err != nil {
		return Tag{}, err
	}
	if consumed := decoder.Offset(); consumed != int64(len(data)) {
		return Tag{}, &DecodeError{
			Category: ErrStructural,
			Detail:   fmt.Sprintf("%d trailing bytes after tag", int64(len(data))-consumed),
			Offset:   consumed,
		}
	}
	return tag, nil
}

// fail builds a DecodeError at the current offset. A cause that is an
// end-of-stream is reported as truncation regardless of the requested
// category; any other reader failure behind a truncation category is
// reported as ErrRead.
func (d *Decoder) fail(category error, detail string, discriminator byte, depth int, cause error) error {
	if cause != nil {
		var nested *DecodeError
		if errors.As(cause, &nested) {
			return nested
		}
		switch {
		case errors.Is(cause, io.ErrUnexpectedEOF) || errors.Is(cause, io.EOF):
			category = ErrTruncated
			if !errors.Is(cause, io.ErrUnexpectedEOF) {
				cause = io.ErrUnexpectedEOF
			}
		case category == ErrTruncated:
			category = ErrRead
		}
	}
	return &DecodeError{
		Category:      category,
		Detail:        detail,
		Discriminator: discriminator,
		Depth:         depth,
		Offset:        d.reader.Offset(),
		Cause:         cause,
	}
}

// readTag reads discriminator, name, and payload.
func (d *Decoder) readTag(depth int) (Tag, error) {
	discriminator, err := d.reader.ReadU8()
	if err != nil {
		return Tag{}, d.fail(ErrTruncated, "reading discriminator", 0, depth, err)
	}

	var name string
	if discriminator != 0 {
		name, err = d.reader.ReadString16()
		if err != nil {
			return Tag{}, d.fail(ErrTruncated, "reading tag name", discriminator, depth, err)
		}
	}

	kind := KindOf(discriminator)
	if kind == KindUnknown {
		d.logger.Warn("unknown tag discriminator; stream position after this tag is unreliable",
			"name", name,
			"discriminator", discriminator,
			"depth", depth,
			"offset", d.reader.Offset(),
		)
		return Tag{Name: name, Value: Unknown{Discriminator: discriminator}}, nil
	}

	value, err := d.readPayload(kind, discriminator, depth)
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: name, Value: value}, nil
}

// readPayload reads the payload of a tag of the given kind. The
// discriminator is passed only for error context.
func (d *Decoder) readPayload(kind Kind, discriminator byte, depth int) (Value, error) {
	switch kind {
	case KindEnd:
		if depth == 0 {
			return nil, d.fail(ErrStructural, "TAG_End found without a TAG_Compound preceding it", discriminator, depth, nil)
		}
		return End{}, nil

	case KindByte:
		value, err := d.reader.ReadI8()
		return d.scalar(Byte(value), err, discriminator, depth)
	case KindShort:
		value, err := d.reader.ReadI16()
		return d.scalar(Short(value), err, discriminator, depth)
	case KindInt:
		value, err := d.reader.ReadI32()
		return d.scalar(Int(value), err, discriminator, depth)
	case KindLong:
		value, err := d.reader.ReadI64()
		return d.scalar(Long(value), err, discriminator, depth)
	case KindFloat:
		value, err := d.reader.ReadF32()
		return d.scalar(Float(value), err, discriminator, depth)
	case KindDouble:
		value, err := d.reader.ReadF64()
		return d.scalar(Double(value), err, discriminator, depth)

	case KindString:
		value, err := d.reader.ReadString16()
		if err != nil {
			return nil, d.fail(ErrTruncated, "reading string", discriminator, depth, err)
		}
		return String(value), nil

	case KindByteArray:
		length, err := d.readCount(discriminator, depth)
		if err != nil {
			return nil, err
		}
		data, err := d.reader.ReadBytes(length)
		if err != nil {
			return nil, d.fail(ErrTruncated, "reading byte array", discriminator, depth, err)
		}
		return ByteArray(data), nil

	case KindShortArray:
		values, err := readArray(d, discriminator, depth, d.reader.ReadI16)
		return ShortArray(values), err
	case KindIntArray:
		values, err := readArray(d, discriminator, depth, d.reader.ReadI32)
		return IntArray(values), err
	case KindLongArray:
		values, err := readArray(d, discriminator, depth, d.reader.ReadI64)
		return LongArray(values), err
	case KindFloatArray:
		values, err := readArray(d, discriminator, depth, d.reader.ReadF32)
		return FloatArray(values), err
	case KindDoubleArray:
		values, err := readArray(d, discriminator, depth, d.reader.ReadF64)
		return DoubleArray(values), err
	case KindStringArray:
		values, err := readArray(d, discriminator, depth, d.reader.ReadString16)
		return StringArray(values), err

	case KindList:
		return d.readList(discriminator, depth)
	case KindCompound:
		return d.readCompound(discriminator, depth)
	case KindObject:
		return d.readObject(discriminator, depth)
	case KindObjectArray:
		return d.readObjectArray(discriminator, depth)

	case KindUnknown:
		return Unknown{Discriminator: discriminator}, nil
	default:
		panic(fmt.Sprintf("nbt: readPayload: unhandled kind %s", kind))
	}
}

func (d *Decoder) scalar(value Value, err error, discriminator byte, depth int) (Value, error) {
	if err != nil {
		return nil, d.fail(ErrTruncated, "reading "+value.Kind().Label()+" payload", discriminator, depth, err)
	}
	return value, nil
}

// readCount reads a 32-bit element count and rejects negative values.
func (d *Decoder) readCount(discriminator byte, depth int) (int, error) {
	count, err := d.reader.ReadI32()
	if err != nil {
		return 0, d.fail(ErrTruncated, "reading length", discriminator, depth, err)
	}
	if count < 0 {
		return 0, d.fail(ErrStructural, fmt.Sprintf("negative length %d", count), discriminator, depth, nil)
	}
	return int(count), nil
}

// readArray reads a 32-bit count followed by that many fixed-layout
// elements.
func readArray[T any](d *Decoder, discriminator byte, depth int, readElement func() (T, error)) ([]T, error) {
	count, err := d.readCount(discriminator, depth)
	if err != nil {
		return nil, err
	}
	values := make([]T, 0, min(count, maxPreallocate))
	for index := range count {
		value, err := readElement()
		if err != nil {
			return nil, d.fail(ErrTruncated, fmt.Sprintf("reading element %d of %d", index, count), discriminator, depth, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// enter checks the depth limit for children at childDepth.
func (d *Decoder) enter(discriminator byte, childDepth int) error {
	if d.maxDepth >= 0 && childDepth > d.maxDepth {
		return d.fail(ErrStructural, fmt.Sprintf("children at depth %d exceed limit %d", childDepth, d.maxDepth),
			discriminator, childDepth-1, ErrDepthLimit)
	}
	return nil
}

// readList reads an element discriminator, a count, and that many
// payload-only elements.
func (d *Decoder) readList(discriminator byte, depth int) (Value, error) {
	if err := d.enter(discriminator, depth+1); err != nil {
		return nil, err
	}

	elementDiscriminator, err := d.reader.ReadU8()
	if err != nil {
		return nil, d.fail(ErrTruncated, "reading list element kind", discriminator, depth, err)
	}
	count, err := d.readCount(discriminator, depth)
	if err != nil {
		return nil, err
	}

	element := KindOf(elementDiscriminator)
	if element == KindUnknown {
		return nil, d.fail(ErrStructural, fmt.Sprintf("list element discriminator %d is not registered", elementDiscriminator),
			discriminator, depth, ErrUnsupportedDiscriminator)
	}
	if element == KindEnd && count > 0 {
		return nil, d.fail(ErrStructural, "TAG_End not permitted in a list", discriminator, depth, nil)
	}

	items := make([]Value, 0, min(count, maxPreallocate))
	for index := range count {
		item, err := d.readPayload(element, elementDiscriminator, depth+1)
		if err != nil {
			return nil, err
		}
		if item.Kind() == KindEnd {
			return nil, d.fail(ErrStructural, "TAG_End not permitted in a list", discriminator, depth, nil)
		}
		if item.Kind() != element {
			return nil, d.fail(ErrStructural,
				fmt.Sprintf("mixed types within a list: item %d is %s, list holds %s", index, item.Kind(), element),
				discriminator, depth, nil)
		}
		items = append(items, item)
	}
	return List{Element: element, Items: items}, nil
}

// readCompound reads named children until TAG_End. There is no length
// prefix: only the End marker terminates the loop.
func (d *Decoder) readCompound(discriminator byte, depth int) (Value, error) {
	if err := d.enter(discriminator, depth+1); err != nil {
		return nil, err
	}

	compound := &Compound{}
	for {
		child, err := d.readTag(depth + 1)
		if err != nil {
			return nil, err
		}
		if child.Kind() == KindEnd {
			return compound, nil
		}
		compound.Put(child)
	}
}

// readObjectHeader reads the type name shared by Object and
// ObjectArray and resolves it against the allow-list.
func (d *Decoder) readObjectHeader(discriminator byte, depth int) (ObjectCodec, error) {
	typeName, err := d.reader.ReadString16()
	if err != nil {
		return nil, d.fail(ErrTruncated, "reading object type name", discriminator, depth, err)
	}
	objectCodec, ok := d.objects.Lookup(typeName)
	if !ok {
		return nil, d.fail(ErrObjectNotAllowed, fmt.Sprintf("object type %q is not registered", typeName), discriminator, depth, nil)
	}
	return objectCodec, nil
}

func (d *Decoder) readObjectData(objectCodec ObjectCodec, discriminator byte, depth int) (any, error) {
	length, err := d.readCount(discriminator, depth)
	if err != nil {
		return nil, err
	}
	data, err := d.reader.ReadBytes(length)
	if err != nil {
		return nil, d.fail(ErrTruncated, "reading object data", discriminator, depth, err)
	}
	value, err := objectCodec.UnmarshalObject(data)
	if err != nil {
		// Codec failures abort the decode; no partially filled value
		// is returned.
		return nil, d.fail(ErrStructural, "object codec rejected data", discriminator, depth, err)
	}
	return value, nil
}

func (d *Decoder) readObject(discriminator byte, depth int) (Value, error) {
	objectCodec, err := d.readObjectHeader(discriminator, depth)
	if err != nil {
		return nil, err
	}
	value, err := d.readObjectData(objectCodec, discriminator, depth)
	if err != nil {
		return nil, err
	}
	return Object{TypeName: objectCodec.TypeName(), Value: value}, nil
}

func (d *Decoder) readObjectArray(discriminator byte, depth int) (Value, error) {
	objectCodec, err := d.readObjectHeader(discriminator, depth)
	if err != nil {
		return nil, err
	}
	count, err := d.readCount(discriminator, depth)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, min(count, maxPreallocate))
	for range count {
		value, err := d.readObjectData(objectCodec, discriminator, depth)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return ObjectArray{TypeName: objectCodec.TypeName(), Values: values}, nil
}
