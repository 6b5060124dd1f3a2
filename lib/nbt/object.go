// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/bureau-foundation/nbt/lib/codec"
)

// ObjectCodec converts one application type to and from the opaque
// bytes carried by Object and ObjectArray tags. The type name is
// written on the wire and selects the codec when reading.
type ObjectCodec interface {
	TypeName() string
	MarshalObject(value any) ([]byte, error)
	UnmarshalObject(data []byte) (any, error)
}

// ObjectRegistry is the allow-list of object types a decoder or
// encoder accepts. A type name missing from the registry is refused
// with ErrObjectNotAllowed; there is no fallback that instantiates
// types named by the stream. A nil *ObjectRegistry refuses every
// object. ObjectRegistry is safe for concurrent use.
type ObjectRegistry struct {
	mu     sync.RWMutex
	codecs map[string]ObjectCodec
}

// NewObjectRegistry returns a registry holding codecs.
func NewObjectRegistry(codecs ...ObjectCodec) (*ObjectRegistry, error) {
	registry := &ObjectRegistry{codecs: make(map[string]ObjectCodec, len(codecs))}
	for _, objectCodec := range codecs {
		if err := registry.Register(objectCodec); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds a codec. Registering a second codec under a type name
// already present is an error.
func (r *ObjectRegistry) Register(objectCodec ObjectCodec) error {
	name := objectCodec.TypeName()
	if name == "" {
		return fmt.Errorf("nbt: object codec %T has an empty type name", objectCodec)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codecs == nil {
		r.codecs = make(map[string]ObjectCodec)
	}
	if _, exists := r.codecs[name]; exists {
		return fmt.Errorf("nbt: object type %q already registered", name)
	}
	r.codecs[name] = objectCodec
	return nil
}

// Lookup returns the codec registered under name.
func (r *ObjectRegistry) Lookup(name string) (ObjectCodec, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	objectCodec, ok := r.codecs[name]
	return objectCodec, ok
}

// TypeNames returns the registered type names, sorted.
func (r *ObjectRegistry) TypeNames() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cborCodec carries values of type T as Core Deterministic CBOR.
type cborCodec[T any] struct {
	name string
}

// CBORCodec returns an ObjectCodec for values of type T encoded with
// lib/codec. MarshalObject accepts T or *T; UnmarshalObject returns T.
func CBORCodec[T any](typeName string) ObjectCodec {
	return cborCodec[T]{name: typeName}
}

func (c cborCodec[T]) TypeName() string { return c.name }

func (c cborCodec[T]) MarshalObject(value any) ([]byte, error) {
	switch typed := value.(type) {
	case T:
		return codec.Marshal(typed)
	case *T:
		if typed == nil {
			return nil, fmt.Errorf("object %q: nil *%s", c.name, reflect.TypeFor[T]())
		}
		return codec.Marshal(*typed)
	default:
		return nil, fmt.Errorf("object %q: got %T, want %s", c.name, value, reflect.TypeFor[T]())
	}
}

func (c cborCodec[T]) UnmarshalObject(data []byte) (any, error) {
	var decoded T
	if err := codec.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("object %q: %w", c.name, err)
	}
	return decoded, nil
}
