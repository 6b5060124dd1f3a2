// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbtjson

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bureau-foundation/nbt/lib/codec"
	"github.com/bureau-foundation/nbt/lib/nbt"
	"github.com/bureau-foundation/nbt/lib/nbt/nbttest"
)

func TestMarshalSimpleTree(t *testing.T) {
	got, err := Marshal(nbttest.SimpleTree(), Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"type":"compound","name":"root","value":[` +
		`{"type":"int","name":"x","value":42},` +
		`{"type":"list","name":"xs","value":{"element":"int","items":[1,2,3]}}]}`
	if string(got) != want {
		t.Errorf("Marshal =\n  %s\nwant\n  %s", got, want)
	}
}

func TestRoundtripSampleTree(t *testing.T) {
	original := nbttest.SampleTree()
	data, err := Marshal(original, Options{Indent: "  "})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	decoded, err := Unmarshal(data, Options{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Equal(original) {
		t.Errorf("roundtrip mismatch\n%s", data)
	}
}

func TestNonFiniteFloats(t *testing.T) {
	tag := nbt.Tag{Name: "f", Value: nbt.NewCompound(
		nbt.Tag{Name: "nan", Value: nbt.Double(math.NaN())},
		nbt.Tag{Name: "inf", Value: nbt.Float(float32(math.Inf(1)))},
		nbt.Tag{Name: "floats", Value: nbt.DoubleArray{math.Inf(-1), 1}},
	)}
	data, err := Marshal(tag, Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, expected := range []string{`"value":"NaN"`, `"value":"Infinity"`, `["-Infinity",1]`} {
		if !strings.Contains(string(data), expected) {
			t.Errorf("output %s missing %s", data, expected)
		}
	}
	decoded, err := Unmarshal(data, Options{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	compound := decoded.Value.(*nbt.Compound)
	if !math.IsNaN(float64(compound.Value("nan").(nbt.Double))) {
		t.Error("NaN did not survive")
	}
	if !math.IsInf(float64(compound.Value("inf").(nbt.Float)), 1) {
		t.Error("+Inf did not survive")
	}
}

func TestUnknownTagDocument(t *testing.T) {
	tag := nbt.Tag{Name: "q", Value: nbt.Unknown{Discriminator: 200}}
	data, err := Marshal(tag, Options{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"type":"unknown","name":"q","discriminator":200}` {
		t.Errorf("Marshal = %s", data)
	}
	if _, err := Unmarshal(data, Options{}); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("Unmarshal(unknown) = %v, want ErrInvalidDocument", err)
	}
}

func TestUnmarshalJSONC(t *testing.T) {
	input := `
	// A hand-written tree.
	{
		"type": "compound",
		"name": "config",
		"value": [
			{"type": "byte", "name": "flag", "value": 1}, /* enabled */
			{"type": "byte_array", "name": "raw", "value": [-1, 0, 255]},
			{"type": "long", "name": "seed", "value": 9223372036854775807},
		],
	}`
	tag, err := Unmarshal([]byte(input), Options{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	compound := tag.Value.(*nbt.Compound)
	if compound.Value("flag") != nbt.Byte(1) {
		t.Errorf("flag = %v", compound.Value("flag"))
	}
	if !nbt.Equal(compound.Value("raw"), nbt.ByteArray{0xff, 0x00, 0xff}) {
		t.Errorf("raw = %v", compound.Value("raw"))
	}
	if compound.Value("seed") != nbt.Long(math.MaxInt64) {
		t.Errorf("seed = %v", compound.Value("seed"))
	}
}

func TestUnmarshalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"byte overflow", `{"type":"byte","name":"b","value":128}`},
		{"int fraction", `{"type":"int","name":"i","value":1.5}`},
		{"unknown kind", `{"type":"quad","name":"q","value":1}`},
		{"missing value", `{"type":"int","name":"i"}`},
		{"end tag", `{"type":"end","name":"e","value":0}`},
		{"unknown field", `{"type":"int","name":"i","value":1,"extra":true}`},
		{"mixed list", `{"type":"list","name":"l","value":{"element":"end","items":[1]}}`},
		{"duplicate child", `{"type":"compound","name":"c","value":[` +
			`{"type":"int","name":"a","value":1},{"type":"int","name":"a","value":2}]}`},
		{"bad float string", `{"type":"double","name":"d","value":"inf"}`},
		{"two tags", `[{"type":"int","name":"a","value":1},{"type":"int","name":"b","value":2}]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(test.input), Options{}); !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("Unmarshal = %v, want ErrInvalidDocument", err)
			}
		})
	}
}

func TestMarshalAllRoundtrip(t *testing.T) {
	tags := []nbt.Tag{nbttest.SimpleTree(), {Name: "b", Value: nbt.Byte(2)}}
	data, err := MarshalAll(tags, Options{})
	if err != nil {
		t.Fatalf("MarshalAll: %v", err)
	}
	decoded, err := UnmarshalAll(data, Options{})
	if err != nil {
		t.Fatalf("UnmarshalAll: %v", err)
	}
	if len(decoded) != 2 || !decoded[0].Equal(tags[0]) || !decoded[1].Equal(tags[1]) {
		t.Errorf("UnmarshalAll = %v", decoded)
	}
}

type waypoint struct {
	Label string `cbor:"label"`
	X     int    `cbor:"x"`
	Y     int    `cbor:"y"`
}

func TestObjects(t *testing.T) {
	registry, err := nbt.NewObjectRegistry(nbt.CBORCodec[waypoint]("waypoint"))
	if err != nil {
		t.Fatalf("NewObjectRegistry: %v", err)
	}
	tag := nbt.Tag{Name: "route", Value: nbt.NewCompound(
		nbt.Tag{Name: "start", Value: nbt.Object{TypeName: "waypoint", Value: waypoint{Label: "home", X: 3, Y: -4}}},
		nbt.Tag{Name: "stops", Value: nbt.ObjectArray{TypeName: "waypoint", Values: []any{
			waypoint{Label: "a", X: 1}, waypoint{Label: "b", Y: 2},
		}}},
	)}

	if _, err := Marshal(tag, Options{}); !errors.Is(err, nbt.ErrObjectNotAllowed) {
		t.Errorf("Marshal without registry = %v, want ErrObjectNotAllowed", err)
	}

	data, err := Marshal(tag, Options{Objects: registry})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `{"object_type":"waypoint","data":{"label":"home","x":3,"y":-4}}`) {
		t.Errorf("object rendering unexpected: %s", data)
	}

	if _, err := Unmarshal(data, Options{}); !errors.Is(err, nbt.ErrObjectNotAllowed) {
		t.Errorf("Unmarshal without registry = %v, want ErrObjectNotAllowed", err)
	}
	decoded, err := Unmarshal(data, Options{Objects: registry})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Equal(tag) {
		t.Errorf("object roundtrip mismatch: %v", decoded)
	}
}

func TestMarshalCBOR(t *testing.T) {
	data, err := MarshalCBOR(nbttest.SimpleTree(), Options{})
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	var generic map[string]any
	if err := codec.Unmarshal(data, &generic); err != nil {
		t.Fatalf("codec.Unmarshal: %v", err)
	}
	if generic["type"] != "compound" || generic["name"] != "root" {
		t.Errorf("CBOR document = %v", generic)
	}
	children, ok := generic["value"].([]any)
	if !ok || len(children) != 2 {
		t.Fatalf("CBOR children = %#v", generic["value"])
	}

	again, err := MarshalCBOR(nbttest.SimpleTree(), Options{})
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	if string(again) != string(data) {
		t.Error("CBOR output is not deterministic")
	}
}
