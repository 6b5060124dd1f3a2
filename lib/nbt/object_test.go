// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/bureau-foundation/nbt/lib/codec"
	"github.com/bureau-foundation/nbt/lib/nbt"
)

type waypoint struct {
	Label string `cbor:"label"`
	X     int    `cbor:"x"`
	Y     int    `cbor:"y"`
}

func waypointRegistry(t *testing.T) *nbt.ObjectRegistry {
	t.Helper()
	registry, err := nbt.NewObjectRegistry(nbt.CBORCodec[waypoint]("waypoint"))
	if err != nil {
		t.Fatalf("NewObjectRegistry: %v", err)
	}
	return registry
}

func TestObjectWireLayout(t *testing.T) {
	value := waypoint{Label: "home", X: 3, Y: 4}
	payload, err := codec.Marshal(value)
	if err != nil {
		t.Fatalf("codec.Marshal: %v", err)
	}

	got, err := nbt.Marshal(nbt.Tag{Name: "o", Value: nbt.Object{TypeName: "waypoint", Value: &value}},
		nbt.Options{Objects: waypointRegistry(t)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var want bytes.Buffer
	want.Write([]byte{64, 0x00, 0x01, 'o', 0x00, 0x08})
	want.WriteString("waypoint")
	_ = binary.Write(&want, binary.BigEndian, int32(len(payload)))
	want.Write(payload)
	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("Marshal = %x, want %x", got, want.Bytes())
	}
}

func TestObjectRefusedWithoutRegistry(t *testing.T) {
	registry := waypointRegistry(t)
	tag := nbt.Tag{Value: nbt.Object{TypeName: "waypoint", Value: waypoint{}}}
	data, err := nbt.Marshal(tag, nbt.Options{Objects: registry})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if _, err := nbt.Unmarshal(data, nbt.Options{}); !errors.Is(err, nbt.ErrObjectNotAllowed) {
		t.Errorf("decode without registry = %v, want ErrObjectNotAllowed", err)
	}
	if _, err := nbt.Marshal(tag, nbt.Options{}); !errors.Is(err, nbt.ErrObjectNotAllowed) {
		t.Errorf("encode without registry = %v, want ErrObjectNotAllowed", err)
	}

	other, err := nbt.NewObjectRegistry(nbt.CBORCodec[waypoint]("route"))
	if err != nil {
		t.Fatalf("NewObjectRegistry: %v", err)
	}
	if _, err := nbt.Unmarshal(data, nbt.Options{Objects: other}); !errors.Is(err, nbt.ErrObjectNotAllowed) {
		t.Errorf("decode with unrelated registry = %v, want ErrObjectNotAllowed", err)
	}
}

func TestObjectCodecErrors(t *testing.T) {
	registry := waypointRegistry(t)

	_, err := nbt.Marshal(nbt.Tag{Value: nbt.Object{TypeName: "waypoint", Value: "not a waypoint"}},
		nbt.Options{Objects: registry})
	if !errors.Is(err, nbt.ErrEncodingConstraint) {
		t.Errorf("wrong Go type: error = %v, want ErrEncodingConstraint", err)
	}

	// Valid header, garbage CBOR payload (0xFF is a stray break code).
	var data bytes.Buffer
	data.Write([]byte{64, 0x00, 0x00, 0x00, 0x08})
	data.WriteString("waypoint")
	data.Write([]byte{0x00, 0x00, 0x00, 0x01, 0xFF})
	_, err = nbt.Unmarshal(data.Bytes(), nbt.Options{Objects: registry})
	if !errors.Is(err, nbt.ErrStructural) {
		t.Errorf("garbage payload: error = %v, want ErrStructural", err)
	}
}

func TestObjectRegistry(t *testing.T) {
	registry, err := nbt.NewObjectRegistry(
		nbt.CBORCodec[waypoint]("waypoint"),
		nbt.CBORCodec[map[string]any]("attributes"),
	)
	if err != nil {
		t.Fatalf("NewObjectRegistry: %v", err)
	}
	if got := registry.TypeNames(); !slices.Equal(got, []string{"attributes", "waypoint"}) {
		t.Errorf("TypeNames() = %v", got)
	}
	if err := registry.Register(nbt.CBORCodec[int]("waypoint")); err == nil {
		t.Error("duplicate registration succeeded")
	}
	if err := registry.Register(nbt.CBORCodec[int]("")); err == nil {
		t.Error("empty type name accepted")
	}
	if _, err := nbt.NewObjectRegistry(nbt.CBORCodec[int]("n"), nbt.CBORCodec[string]("n")); err == nil {
		t.Error("NewObjectRegistry accepted duplicates")
	}

	var missing *nbt.ObjectRegistry
	if _, ok := missing.Lookup("waypoint"); ok {
		t.Error("nil registry found a codec")
	}
}
