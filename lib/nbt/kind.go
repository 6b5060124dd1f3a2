// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "fmt"

// Kind identifies the variant of a tag. Kind values are internal
// enumerators; the one-byte wire codes are assigned separately by the
// registry ([Discriminator] and [KindOf]).
type Kind uint8

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindDoubleArray
	KindFloatArray
	KindLongArray
	KindShortArray
	KindStringArray
	KindObjectArray
	KindObject

	// KindUnknown marks a wire discriminator the registry does not
	// recognize. It has no discriminator of its own.
	KindUnknown

	kindCount
)

// kindInfo is one registry row.
type kindInfo struct {
	// discriminator is the wire code.
	discriminator byte
	// name is the lower-case identifier used by ParseKind and the JSON
	// interchange format.
	name string
	// label is the TAG_* name used in diagnostic output.
	label string
}

// registry binds each kind to its wire discriminator. These values are
// protocol constants: changing one breaks every stream written with it.
// KindUnknown is deliberately absent.
var registry = [kindCount]kindInfo{
	KindEnd:         {0, "end", "TAG_End"},
	KindByte:        {1, "byte", "TAG_Byte"},
	KindShort:       {2, "short", "TAG_Short"},
	KindInt:         {3, "int", "TAG_Int"},
	KindLong:        {4, "long", "TAG_Long"},
	KindFloat:       {5, "float", "TAG_Float"},
	KindDouble:      {6, "double", "TAG_Double"},
	KindByteArray:   {7, "byte_array", "TAG_Byte_Array"},
	KindString:      {8, "string", "TAG_String"},
	KindList:        {9, "list", "TAG_List"},
	KindCompound:    {10, "compound", "TAG_Compound"},
	KindIntArray:    {11, "int_array", "TAG_Int_Array"},
	KindDoubleArray: {60, "double_array", "TAG_Double_Array"},
	KindFloatArray:  {61, "float_array", "TAG_Float_Array"},
	KindLongArray:   {62, "long_array", "TAG_Long_Array"},
	KindObjectArray: {63, "object_array", "TAG_Object_Array"},
	KindObject:      {64, "object", "TAG_Object"},
	KindShortArray:  {65, "short_array", "TAG_Short_Array"},
	KindStringArray: {66, "string_array", "TAG_String_Array"},
	KindUnknown:     {0, "unknown", "TAG_Unknown"},
}

// byDiscriminator is the reverse table. Entries not assigned by the
// registry hold KindUnknown.
var byDiscriminator [256]Kind

// byName maps ParseKind input to kinds.
var byName = make(map[string]Kind, kindCount)

func init() {
	for index := range byDiscriminator {
		byDiscriminator[index] = KindUnknown
	}
	for kind := range kindCount {
		info := registry[kind]
		byName[info.name] = kind
		if kind == KindUnknown {
			continue
		}
		if existing := byDiscriminator[info.discriminator]; existing != KindUnknown {
			panic(fmt.Sprintf("nbt: discriminator %d assigned to both %s and %s", info.discriminator, existing, kind))
		}
		byDiscriminator[info.discriminator] = kind
	}
}

// Discriminator returns the wire code for kind. The second result is
// false for KindUnknown and for values outside the defined set; such
// tags have no wire form.
func Discriminator(kind Kind) (byte, bool) {
	if kind >= KindUnknown {
		return 0, false
	}
	return registry[kind].discriminator, true
}

// KindOf returns the kind bound to a wire discriminator, or KindUnknown
// for codes the registry does not assign. It never fails.
func KindOf(discriminator byte) Kind {
	return byDiscriminator[discriminator]
}

// String returns the lower-case kind name ("int", "byte_array", ...).
func (k Kind) String() string {
	if k < kindCount {
		return registry[k].name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Label returns the TAG_* name of the kind, as used in diagnostic
// output ("TAG_Int", "TAG_Compound", ...).
func (k Kind) Label() string {
	if k < kindCount {
		return registry[k].label
	}
	return fmt.Sprintf("TAG_Kind(%d)", uint8(k))
}

// ParseKind parses a kind from its lower-case name.
func ParseKind(name string) (Kind, error) {
	kind, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown tag kind: %q", name)
	}
	return kind, nil
}

// Kinds returns every kind that has a wire discriminator, in
// enumeration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, KindUnknown)
	for kind := range KindUnknown {
		kinds = append(kinds, kind)
	}
	return kinds
}
