// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"math"
	"reflect"
	"slices"
)

// Equal reports whether two values have the same kind and payload.
// Floating-point payloads compare by bit pattern, so a NaN equals the
// same NaN and +0 differs from -0: equality here means "encodes to the
// same bytes". Compounds compare children pairwise in order, since
// order is part of the encoding. Object payloads compare with
// reflect.DeepEqual.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch left := a.(type) {
	case Byte, Short, Int, Long, String, End, Unknown:
		return a == b
	case Float:
		return math.Float32bits(float32(left)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(left)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return slices.Equal(left, b.(ByteArray))
	case ShortArray:
		return slices.Equal(left, b.(ShortArray))
	case IntArray:
		return slices.Equal(left, b.(IntArray))
	case LongArray:
		return slices.Equal(left, b.(LongArray))
	case StringArray:
		return slices.Equal(left, b.(StringArray))
	case FloatArray:
		return slices.EqualFunc(left, b.(FloatArray), func(x, y float32) bool {
			return math.Float32bits(x) == math.Float32bits(y)
		})
	case DoubleArray:
		return slices.EqualFunc(left, b.(DoubleArray), func(x, y float64) bool {
			return math.Float64bits(x) == math.Float64bits(y)
		})
	case List:
		right := b.(List)
		return left.Element == right.Element && slices.EqualFunc(left.Items, right.Items, Equal)
	case *Compound:
		right := b.(*Compound)
		if left.Len() != right.Len() {
			return false
		}
		for index := range left.Len() {
			if !left.entries[index].Equal(right.entries[index]) {
				return false
			}
		}
		return true
	case Object:
		right := b.(Object)
		return left.TypeName == right.TypeName && reflect.DeepEqual(left.Value, right.Value)
	case ObjectArray:
		right := b.(ObjectArray)
		return left.TypeName == right.TypeName && reflect.DeepEqual(left.Values, right.Values)
	default:
		panic(fmt.Sprintf("nbt: Equal: unhandled value type %T", a))
	}
}

// Clone returns a deep copy of value. Slices and compounds are copied;
// Object payloads are shared, since the codec owns their structure.
func Clone(value Value) Value {
	switch original := value.(type) {
	case nil:
		return nil
	case Byte, Short, Int, Long, Float, Double, String, End, Unknown:
		return value
	case ByteArray:
		return slices.Clone(original)
	case ShortArray:
		return slices.Clone(original)
	case IntArray:
		return slices.Clone(original)
	case LongArray:
		return slices.Clone(original)
	case FloatArray:
		return slices.Clone(original)
	case DoubleArray:
		return slices.Clone(original)
	case StringArray:
		return slices.Clone(original)
	case List:
		items := make([]Value, len(original.Items))
		for index, item := range original.Items {
			items[index] = Clone(item)
		}
		return List{Element: original.Element, Items: items}
	case *Compound:
		copied := &Compound{}
		for tag := range original.Tags() {
			copied.Put(Tag{Name: tag.Name, Value: Clone(tag.Value)})
		}
		return copied
	case Object:
		return original
	case ObjectArray:
		return ObjectArray{TypeName: original.TypeName, Values: slices.Clone(original.Values)}
	default:
		panic(fmt.Sprintf("nbt: Clone: unhandled value type %T", value))
	}
}
