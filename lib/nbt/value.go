// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "fmt"

// Value is the payload of a tag. The set of implementations is closed:
// only the types in this package satisfy it, one per [Kind].
type Value interface {
	// Kind reports which variant the value is.
	Kind() Kind

	value()
}

// Tag is one named node of the tree. List elements are stored as bare
// values inside [List], so every Tag has a name slot even when the
// wire representation carries none.
type Tag struct {
	Name  string
	Value Value
}

// Kind returns the kind of the tag's value, or KindEnd for a tag with
// no value.
func (t Tag) Kind() Kind {
	if t.Value == nil {
		return KindEnd
	}
	return t.Value.Kind()
}

// Equal reports whether two tags have the same name, kind, and payload.
func (t Tag) Equal(other Tag) bool {
	return t.Name == other.Name && Equal(t.Value, other.Value)
}

// String renders the tag in the TAG_Kind("name"): value form.
func (t Tag) String() string {
	if t.Name == "" {
		return fmt.Sprintf("%s: %v", t.Kind().Label(), t.Value)
	}
	return fmt.Sprintf("%s(%q): %v", t.Kind().Label(), t.Name, t.Value)
}

// Scalars.
type (
	Byte   int8
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string
)

// Primitive arrays.
type (
	ByteArray   []byte
	ShortArray  []int16
	IntArray    []int32
	LongArray   []int64
	FloatArray  []float32
	DoubleArray []float64
	StringArray []string
)

// End is the compound terminator. It exists as a value so the decoder
// can report it; it has no wire form of its own outside a compound.
type End struct{}

// Unknown stands in for a tag whose discriminator the registry does
// not recognize. It keeps the discriminator for diagnostics and
// carries no payload. Decoding past an Unknown tag is unreliable: its
// payload length is unknowable, so the stream position after it is
// not guaranteed to sit on a tag boundary.
type Unknown struct {
	Discriminator byte
}

// List is an ordered sequence of unnamed values that all share one
// element kind. An empty list may declare KindEnd as its element kind.
type List struct {
	Element Kind
	Items   []Value
}

// NewList builds a list after checking that every item has the
// declared element kind.
func NewList(element Kind, items ...Value) (List, error) {
	list := List{Element: element, Items: items}
	if err := list.Validate(); err != nil {
		return List{}, err
	}
	return list, nil
}

// Validate checks list homogeneity. It returns an error wrapping
// ErrStructural when an item is missing, is an End, or differs from
// the declared element kind, and when the element kind itself cannot
// be written.
func (l List) Validate() error {
	if _, ok := Discriminator(l.Element); !ok {
		return fmt.Errorf("%w: list element kind %s has no discriminator", ErrStructural, l.Element)
	}
	if l.Element == KindEnd && len(l.Items) > 0 {
		return fmt.Errorf("%w: TAG_End not permitted in a list", ErrStructural)
	}
	for index, item := range l.Items {
		if item == nil {
			return fmt.Errorf("%w: list item %d is nil", ErrStructural, index)
		}
		if kind := item.Kind(); kind != l.Element {
			return fmt.Errorf("%w: mixed types within a list: item %d is %s, list holds %s",
				ErrStructural, index, kind, l.Element)
		}
	}
	return nil
}

// Len returns the number of items.
func (l List) Len() int { return len(l.Items) }

// Object is a value carried through a registered [ObjectCodec]. The
// TypeName selects the codec on both ends of the wire.
type Object struct {
	TypeName string
	Value    any
}

// ObjectArray is a sequence of values sharing one registered codec.
type ObjectArray struct {
	TypeName string
	Values   []any
}

func (Byte) Kind() Kind        { return KindByte }
func (Short) Kind() Kind       { return KindShort }
func (Int) Kind() Kind         { return KindInt }
func (Long) Kind() Kind        { return KindLong }
func (Float) Kind() Kind       { return KindFloat }
func (Double) Kind() Kind      { return KindDouble }
func (String) Kind() Kind      { return KindString }
func (ByteArray) Kind() Kind   { return KindByteArray }
func (ShortArray) Kind() Kind  { return KindShortArray }
func (IntArray) Kind() Kind    { return KindIntArray }
func (LongArray) Kind() Kind   { return KindLongArray }
func (FloatArray) Kind() Kind  { return KindFloatArray }
func (DoubleArray) Kind() Kind { return KindDoubleArray }
func (StringArray) Kind() Kind { return KindStringArray }
func (End) Kind() Kind         { return KindEnd }
func (Unknown) Kind() Kind     { return KindUnknown }
func (List) Kind() Kind        { return KindList }
func (*Compound) Kind() Kind   { return KindCompound }
func (Object) Kind() Kind      { return KindObject }
func (ObjectArray) Kind() Kind { return KindObjectArray }

func (Byte) value()        {}
func (Short) value()       {}
func (Int) value()         {}
func (Long) value()        {}
func (Float) value()       {}
func (Double) value()      {}
func (String) value()      {}
func (ByteArray) value()   {}
func (ShortArray) value()  {}
func (IntArray) value()    {}
func (LongArray) value()   {}
func (FloatArray) value()  {}
func (DoubleArray) value() {}
func (StringArray) value() {}
func (End) value()         {}
func (Unknown) value()     {}
func (List) value()        {}
func (*Compound) value()   {}
func (Object) value()      {}
func (ObjectArray) value() {}
