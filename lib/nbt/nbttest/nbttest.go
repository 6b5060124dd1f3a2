// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbttest provides tag trees shared by tests of packages built
// on lib/nbt.
package nbttest

import (
	"math"

	"github.com/bureau-foundation/nbt/lib/nbt"
)

// SimpleBytes is the encoding of SimpleTree:
//
//	TAG_Compound("root")
//	  TAG_Int("x"): 42
//	  TAG_List("xs"): 3 ints [1, 2, 3]
const SimpleBytes = "0A 00 04 72 6F 6F 74 | 03 00 01 78 00 00 00 2A | " +
	"09 00 02 78 73 03 00 00 00 03 00 00 00 01 00 00 00 02 00 00 00 03 | 00"

// SimpleTree returns the tree encoded by SimpleBytes.
func SimpleTree() nbt.Tag {
	return nbt.Tag{Name: "root", Value: nbt.NewCompound(
		nbt.Tag{Name: "x", Value: nbt.Int(42)},
		nbt.Tag{Name: "xs", Value: nbt.List{
			Element: nbt.KindInt,
			Items:   []nbt.Value{nbt.Int(1), nbt.Int(2), nbt.Int(3)},
		}},
	)}
}

// SampleTree returns a tree with at least one tag of every kind that
// needs no object registry, including nested compounds and lists.
func SampleTree() nbt.Tag {
	nested := nbt.NewCompound(
		nbt.Tag{Name: "label", Value: nbt.String("inner")},
		nbt.Tag{Name: "empty", Value: nbt.NewCompound()},
	)
	listOfCompounds := nbt.List{Element: nbt.KindCompound, Items: []nbt.Value{
		nbt.NewCompound(nbt.Tag{Name: "id", Value: nbt.Short(1)}),
		nbt.NewCompound(nbt.Tag{Name: "id", Value: nbt.Short(2)}),
	}}
	listOfLists := nbt.List{Element: nbt.KindList, Items: []nbt.Value{
		nbt.List{Element: nbt.KindString, Items: []nbt.Value{nbt.String("a"), nbt.String("b")}},
		nbt.List{Element: nbt.KindEnd},
	}}

	return nbt.Tag{Name: "sample", Value: nbt.NewCompound(
		nbt.Tag{Name: "byte", Value: nbt.Byte(-128)},
		nbt.Tag{Name: "short", Value: nbt.Short(math.MaxInt16)},
		nbt.Tag{Name: "int", Value: nbt.Int(math.MinInt32)},
		nbt.Tag{Name: "long", Value: nbt.Long(math.MaxInt64)},
		nbt.Tag{Name: "float", Value: nbt.Float(0.5)},
		nbt.Tag{Name: "double", Value: nbt.Double(-1.25e300)},
		nbt.Tag{Name: "string", Value: nbt.String("héllo wörld")},
		nbt.Tag{Name: "empty_string", Value: nbt.String("")},
		nbt.Tag{Name: "bytes", Value: nbt.ByteArray{0x00, 0x7f, 0x80, 0xff}},
		nbt.Tag{Name: "shorts", Value: nbt.ShortArray{-1, 0, 1}},
		nbt.Tag{Name: "ints", Value: nbt.IntArray{math.MinInt32, 0, math.MaxInt32}},
		nbt.Tag{Name: "longs", Value: nbt.LongArray{math.MinInt64, math.MaxInt64}},
		nbt.Tag{Name: "floats", Value: nbt.FloatArray{1.5, -0.25}},
		nbt.Tag{Name: "doubles", Value: nbt.DoubleArray{math.Pi, math.E}},
		nbt.Tag{Name: "strings", Value: nbt.StringArray{"alpha", "", "gamma"}},
		nbt.Tag{Name: "nested", Value: nested},
		nbt.Tag{Name: "compounds", Value: listOfCompounds},
		nbt.Tag{Name: "lists", Value: listOfLists},
		nbt.Tag{Name: "", Value: nbt.Byte(1)},
	)}
}

// Nested returns a tree of depth compounds, each holding the next
// under the name "n". The innermost compound is empty.
func Nested(depth int) nbt.Tag {
	var value nbt.Value = nbt.NewCompound()
	for range depth {
		value = nbt.NewCompound(nbt.Tag{Name: "n", Value: value})
	}
	return nbt.Tag{Name: "deep", Value: value}
}
