// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"iter"
)

// Compound is a keyed map of named child tags that remembers insertion
// order. Lookups go through a name index; iteration, encoding, and
// diagnostic output follow insertion order, which makes a decoded
// compound re-encode to the same bytes it was read from.
//
// The zero value is an empty compound ready for use. A Compound is not
// safe for concurrent mutation.
type Compound struct {
	entries []Tag
	index   map[string]int
}

// NewCompound returns a compound holding tags in the given order. A
// repeated name keeps the position of its first occurrence and the
// value of its last, the same as successive [Compound.Put] calls.
func NewCompound(tags ...Tag) *Compound {
	compound := &Compound{}
	for _, tag := range tags {
		compound.Put(tag)
	}
	return compound
}

// Put inserts tag under tag.Name. When the name is already present the
// existing entry is replaced in place: last write wins, first position
// is kept.
func (c *Compound) Put(tag Tag) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if position, ok := c.index[tag.Name]; ok {
		c.entries[position] = tag
		return
	}
	c.index[tag.Name] = len(c.entries)
	c.entries = append(c.entries, tag)
}

// Set is shorthand for Put(Tag{Name: name, Value: value}).
func (c *Compound) Set(name string, value Value) {
	c.Put(Tag{Name: name, Value: value})
}

// Get returns the child tag with the given name.
func (c *Compound) Get(name string) (Tag, bool) {
	if c == nil {
		return Tag{}, false
	}
	position, ok := c.index[name]
	if !ok {
		return Tag{}, false
	}
	return c.entries[position], true
}

// Value returns the payload of the named child, or nil if absent.
func (c *Compound) Value(name string) Value {
	tag, ok := c.Get(name)
	if !ok {
		return nil
	}
	return tag.Value
}

// Has reports whether a child with the given name exists.
func (c *Compound) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Delete removes the named child and reports whether it was present.
// The relative order of the remaining children is unchanged.
func (c *Compound) Delete(name string) bool {
	if c == nil {
		return false
	}
	position, ok := c.index[name]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:position], c.entries[position+1:]...)
	delete(c.index, name)
	for index := position; index < len(c.entries); index++ {
		c.index[c.entries[index].Name] = index
	}
	return true
}

// Len returns the number of children.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Names returns the child names in insertion order.
func (c *Compound) Names() []string {
	names := make([]string, 0, c.Len())
	for tag := range c.Tags() {
		names = append(names, tag.Name)
	}
	return names
}

// Tags iterates over the children in insertion order.
func (c *Compound) Tags() iter.Seq[Tag] {
	return func(yield func(Tag) bool) {
		if c == nil {
			return
		}
		for _, tag := range c.entries {
			if !yield(tag) {
				return
			}
		}
	}
}

// All iterates over name/value pairs in insertion order.
func (c *Compound) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for tag := range c.Tags() {
			if !yield(tag.Name, tag.Value) {
				return
			}
		}
	}
}

// String summarizes the compound as "N entries".
func (c *Compound) String() string {
	if c.Len() == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", c.Len())
}
