// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"github.com/benbjohnson/immutable"
)

var (
	emptyMap  = immutable.NewSortedMap(nil)
	emptyList = immutable.NewList()
)

var EmptyTypeMap = TypeMap{emptyMap, emptyList}

// TypeMap contains immutable mappings from labels to types. Entries are visited in
// insertion order; lookups are by label.
type TypeMap struct {
	m     *immutable.SortedMap
	order *immutable.List
}

func NewTypeMap() TypeMap { return EmptyTypeMap }

// Create a TypeMap with a single entry.
func SingletonTypeMap(label string, t Type) TypeMap {
	return TypeMap{emptyMap.Set(label, t), emptyList.Append(label)}
}

// Get the number of entries in the map.
func (m TypeMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the type for a label.
func (m TypeMap) Get(label string) (Type, bool) {
	if m.m == nil {
		return nil, false
	}
	t, ok := m.m.Get(label)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Set returns a copy of the map with the label set to t. New labels are ordered last.
func (m TypeMap) Set(label string, t Type) TypeMap {
	if m.m == nil {
		m = EmptyTypeMap
	}
	order := m.order
	if _, exists := m.m.Get(label); !exists {
		order = order.Append(label)
	}
	return TypeMap{m.m.Set(label, t), order}
}

// Iterate over entries in the map, in insertion order.
// If f returns false, iteration will be stopped.
func (m TypeMap) Range(f func(string, Type) bool) {
	if m.m == nil {
		return
	}
	iter := m.order.Iterator()
	for !iter.Done() {
		_, label := iter.Next()
		t, _ := m.m.Get(label)
		if !f(label.(string), t.(Type)) {
			return
		}
	}
}

// Labels returns the labels of the map, in insertion order.
func (m TypeMap) Labels() []string {
	labels := make([]string, 0, m.Len())
	m.Range(func(label string, _ Type) bool {
		labels = append(labels, label)
		return true
	})
	return labels
}

// Convert the map to a builder for modification, without mutating the existing map.
func (m TypeMap) Builder() TypeMapBuilder {
	b := NewTypeMapBuilder()
	m.Range(func(label string, t Type) bool {
		b.Set(label, t)
		return true
	})
	return b
}

// TypeMapBuilder enables in-place updates of a map before finalization.
type TypeMapBuilder struct {
	m       *immutable.SortedMapBuilder
	order   *immutable.ListBuilder
	deleted bool
}

func NewTypeMapBuilder() TypeMapBuilder {
	return TypeMapBuilder{m: immutable.NewSortedMapBuilder(nil), order: immutable.NewListBuilder()}
}

func (b *TypeMapBuilder) EnsureInitialized() {
	if b.m != nil {
		return
	}
	*b = NewTypeMapBuilder()
}

// Get the number of entries in the builder.
func (b TypeMapBuilder) Len() int {
	if b.m == nil {
		return 0
	}
	return b.m.Len()
}

// Get the type for a label in the builder.
func (b TypeMapBuilder) Get(label string) (Type, bool) {
	if b.m == nil {
		return nil, false
	}
	t, ok := b.m.Get(label)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Set the type for the given label in the builder.
func (b *TypeMapBuilder) Set(label string, t Type) {
	b.EnsureInitialized()
	if _, exists := b.m.Get(label); !exists {
		b.order.Append(label)
	}
	b.m.Set(label, t)
}

// Delete the given label and corresponding type from the builder.
func (b *TypeMapBuilder) Delete(label string) {
	if b.m == nil {
		return
	}
	if _, exists := b.m.Get(label); exists {
		b.m.Delete(label)
		b.deleted = true
	}
}

// Finalize the builder into an immutable map. The builder must not be used afterwards.
func (b *TypeMapBuilder) Build() TypeMap {
	if b.m == nil {
		return EmptyTypeMap
	}
	m, order := b.m.Map(), b.order.List()
	b.m, b.order = nil, nil
	if b.deleted {
		kept := immutable.NewListBuilder()
		iter := order.Iterator()
		for !iter.Done() {
			_, label := iter.Next()
			if _, ok := m.Get(label); ok {
				kept.Append(label)
			}
		}
		order = kept.List()
	}
	return TypeMap{m, order}
}
