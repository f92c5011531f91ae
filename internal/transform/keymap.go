//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package transform derives the star schema from raw sales records:
// deduplicated dimension rows with dense surrogate keys, and fact rows
// whose foreign keys resolve through the dimension key maps.
package transform

// KeyMap assigns dense surrogate keys to natural keys in first-occurrence
// order. Keys are monotonically increasing integers starting at 1, so for a
// fixed input ordering the assignment is deterministic.
type KeyMap[K comparable] struct {
	ids  map[K]int
	keys []K
}

// NewKeyMap creates an empty KeyMap.
func NewKeyMap[K comparable]() *KeyMap[K] {
	return &KeyMap[K]{ids: make(map[K]int)}
}

// GetOrAssign returns the surrogate key for k, assigning the next unused
// key on first occurrence. created reports whether a new key was assigned.
func (m *KeyMap[K]) GetOrAssign(k K) (id int, created bool) {
	if id, ok := m.ids[k]; ok {
		return id, false
	}
	id = len(m.keys) + 1
	m.ids[k] = id
	m.keys = append(m.keys, k)
	return id, true
}

// Lookup returns the surrogate key for k without assigning one.
func (m *KeyMap[K]) Lookup(k K) (int, bool) {
	id, ok := m.ids[k]
	return id, ok
}

// Len returns the number of assigned keys.
func (m *KeyMap[K]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the natural keys in assignment order. The
// surrogate key of Keys()[i] is i+1.
func (m *KeyMap[K]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}
