// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "testing"

// The wire discriminators are protocol constants. This table is the
// authoritative list; a change here is a format break.
func TestDiscriminatorsAreFrozen(t *testing.T) {
	expected := map[Kind]byte{
		KindEnd:         0,
		KindByte:        1,
		KindShort:       2,
		KindInt:         3,
		KindLong:        4,
		KindFloat:       5,
		KindDouble:      6,
		KindByteArray:   7,
		KindString:      8,
		KindList:        9,
		KindCompound:    10,
		KindIntArray:    11,
		KindDoubleArray: 60,
		KindFloatArray:  61,
		KindLongArray:   62,
		KindObjectArray: 63,
		KindObject:      64,
		KindShortArray:  65,
		KindStringArray: 66,
	}
	if len(expected) != len(Kinds()) {
		t.Fatalf("table covers %d kinds, registry has %d", len(expected), len(Kinds()))
	}
	for kind, want := range expected {
		got, ok := Discriminator(kind)
		if !ok {
			t.Errorf("Discriminator(%s) reported no wire form", kind)
			continue
		}
		if got != want {
			t.Errorf("Discriminator(%s) = %d, want %d", kind, got, want)
		}
		if back := KindOf(got); back != kind {
			t.Errorf("KindOf(%d) = %s, want %s", got, back, kind)
		}
	}
}

func TestDiscriminatorsAreUnique(t *testing.T) {
	seen := make(map[byte]Kind)
	for _, kind := range Kinds() {
		discriminator, _ := Discriminator(kind)
		if previous, exists := seen[discriminator]; exists {
			t.Errorf("discriminator %d assigned to both %s and %s", discriminator, previous, kind)
		}
		seen[discriminator] = kind
	}
}

func TestUnknownHasNoDiscriminator(t *testing.T) {
	if _, ok := Discriminator(KindUnknown); ok {
		t.Error("KindUnknown has a discriminator")
	}
	if _, ok := Discriminator(Kind(200)); ok {
		t.Error("out-of-range kind has a discriminator")
	}
	for _, discriminator := range []byte{12, 59, 67, 200, 255} {
		if kind := KindOf(discriminator); kind != KindUnknown {
			t.Errorf("KindOf(%d) = %s, want unknown", discriminator, kind)
		}
	}
}

func TestParseKind(t *testing.T) {
	for kind := range kindCount {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Errorf("ParseKind(%q): %v", kind.String(), err)
			continue
		}
		if parsed != kind {
			t.Errorf("ParseKind(%q) = %s, want %s", kind.String(), parsed, kind)
		}
	}
	if _, err := ParseKind("TAG_Int"); err == nil {
		t.Error("ParseKind accepted a label")
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInt, "TAG_Int"},
		{KindByteArray, "TAG_Byte_Array"},
		{KindCompound, "TAG_Compound"},
		{KindUnknown, "TAG_Unknown"},
		{Kind(250), "TAG_Kind(250)"},
	}
	for _, test := range tests {
		if got := test.kind.Label(); got != test.want {
			t.Errorf("%d.Label() = %q, want %q", test.kind, got, test.want)
		}
	}
}
