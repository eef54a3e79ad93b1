// Copyright 2016-2026 The GPflow Authors. SPDX-License-Identifier: Apache-2.0

// Package collections implements the ordered set used for graph-scoped collections.
//
// An OrderedSet has set membership semantics (an element is present at most once) while
// preserving insertion order when iterating, the same way graph collections behave as lists
// that are never allowed to hold duplicates.
package collections

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedSet is a set of comparable elements that remembers insertion order.
//
// The zero value is not usable, create one with Make or MakeWith.
type OrderedSet[T comparable] struct {
	m *orderedmap.OrderedMap[T, struct{}]
}

// Make returns an empty OrderedSet. Size is optional, and if given
// will reserve the expected size.
func Make[T comparable](size ...int) *OrderedSet[T] {
	if len(size) == 0 {
		return &OrderedSet[T]{m: orderedmap.New[T, struct{}]()}
	}
	return &OrderedSet[T]{m: orderedmap.New[T, struct{}](size[0])}
}

// MakeWith creates an OrderedSet[T] with the given elements inserted, in order.
func MakeWith[T comparable](elements ...T) *OrderedSet[T] {
	s := Make[T](len(elements))
	s.Insert(elements...)
	return s
}

// Len returns the number of elements in the set.
func (s *OrderedSet[T]) Len() int {
	return s.m.Len()
}

// Has returns true if the set has the given key.
func (s *OrderedSet[T]) Has(key T) bool {
	_, found := s.m.Get(key)
	return found
}

// Insert appends keys not yet present to the end of the set.
// Keys already present keep their original position.
//
// It returns the number of keys actually inserted.
func (s *OrderedSet[T]) Insert(keys ...T) (count int) {
	for _, key := range keys {
		if s.Has(key) {
			continue
		}
		s.m.Set(key, struct{}{})
		count++
	}
	return
}

// Remove deletes key from the set and returns whether it was present.
func (s *OrderedSet[T]) Remove(key T) bool {
	_, found := s.m.Delete(key)
	return found
}

// All iterates over the elements in insertion order.
func (s *OrderedSet[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key) {
				return
			}
		}
	}
}

// Slice returns a snapshot of the elements in insertion order.
// Changes to the returned slice don't affect the set.
func (s *OrderedSet[T]) Slice() []T {
	elements := make([]T, 0, s.Len())
	for key := range s.All() {
		elements = append(elements, key)
	}
	return elements
}

// Equal returns whether s and s2 have the exact same elements, irrespective of order.
func (s *OrderedSet[T]) Equal(s2 *OrderedSet[T]) bool {
	if s.Len() != s2.Len() {
		return false
	}
	for key := range s.All() {
		if !s2.Has(key) {
			return false
		}
	}
	return true
}
