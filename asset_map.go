// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Map maps asset names to storage cells of a single bound type.
// It is typically used as a bucket inside a [TypeMap].
//
// Every value inserted into a Map must match its bound type. Names are
// unique; inserting under an existing name replaces the previous value and
// hands it back to the caller.
//
// Map is safe for concurrent use. Operations that take assets hold the
// map lock for their whole duration, so an insert can never interleave
// with a take of the same name.
type Map struct {
	mu      sync.RWMutex
	typ     reflect.Type
	entries map[string]*Storage
}

// NewMap creates an empty map bound to T.
func NewMap[T any]() *Map {
	return NewMapOf(reflect.TypeFor[T]())
}

// NewMapOf creates an empty map bound to typ.
func NewMapOf(typ reflect.Type) *Map {
	return &Map{
		typ:     typ,
		entries: make(map[string]*Storage),
	}
}

// MapFromAsset creates a map bound to T holding a single asset.
func MapFromAsset[T any](name string, asset T) *Map {
	m := NewMap[T]()
	m.entries[name] = NewStorage(asset)
	return m
}

// MapFrom creates a map bound to T from a plain map of assets.
func MapFrom[T any](assets map[string]T) *Map {
	m := NewMap[T]()
	for name, asset := range assets {
		m.entries[name] = NewStorage(asset)
	}
	return m
}

// Type returns the type the map is bound to.
func (m *Map) Type() reflect.Type {
	return m.typ
}

// Len returns the number of assets in the map.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Names returns the asset names in sorted order.
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedNames(m.entries)
}

// Contains reports whether an asset named name exists.
func (m *Map) Contains(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[name]
	return ok
}

// Extend moves every asset of other into m. Assets in other replace assets
// in m with the same name. If the bound types differ, Extend fails with
// [ErrTypeMismatch] and neither map is modified.
func (m *Map) Extend(other *Map) error {
	if other == nil || other == m {
		return nil
	}
	if other.typ != m.typ {
		return fmt.Errorf("%w: cannot extend map of %v with map of %v", ErrTypeMismatch, m.typ, other.typ)
	}

	other.mu.Lock()
	moved := other.entries
	other.entries = make(map[string]*Storage)
	other.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	for name, s := range moved {
		m.entries[name] = s
	}
	return nil
}

// MapInsert stores asset under name.
//
// If T is not the bound type of m, MapInsert fails with [ErrTypeMismatch]
// and m is unchanged. Otherwise the asset is always stored. When a
// previous asset existed under name it is taken and returned with
// replaced set to true. If the previous asset cannot be taken because
// handles to it are alive, the returned error is a [*TakeError] carrying
// the displaced storage cell, so the old asset is never lost.
func MapInsert[T any](m *Map, name string, asset T) (old T, replaced bool, err error) {
	var zero T
	if reflect.TypeFor[T]() != m.typ {
		return zero, false, fmt.Errorf("%w: cannot insert %v into map of %v", ErrTypeMismatch, reflect.TypeFor[T](), m.typ)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.entries[name]
	m.entries[name] = NewStorage(asset)
	if !ok {
		return zero, false, nil
	}

	old, err = Take[T](prev)
	if err != nil {
		return zero, true, &TakeError{Err: err, Name: name, Storage: prev}
	}
	return old, true, nil
}

// MapGet returns a shared handle to the asset named name.
func MapGet[T any](m *Map, name string) (*Ref[T], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	ref, err := Get[T](s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}
	return ref, nil
}

// MapTake removes the asset named name and returns it.
// If the asset cannot be taken it stays in the map unchanged.
func MapTake[T any](m *Map, name string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.entries[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	v, err := Take[T](s)
	if err != nil {
		return v, fmt.Errorf("%w: %q", err, name)
	}
	delete(m.entries, name)
	return v, nil
}

// MapDrain takes every asset out of m.
//
// Entries are processed in name order. At the first entry that cannot be
// taken MapDrain stops, puts every already extracted asset back, and
// returns a [*DrainError] whose Map holds all assets. Draining is fully
// reversible: on failure nothing is lost and the caller may retry.
func MapDrain[T any](m *Map) (map[string]T, error) {
	if reflect.TypeFor[T]() != m.typ {
		return nil, &DrainError{Err: ErrTypeMismatch, Map: m}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]T, len(m.entries))
	for _, name := range sortedNames(m.entries) {
		v, err := Take[T](m.entries[name])
		if err != nil {
			for taken, asset := range out {
				m.entries[taken] = NewStorage(asset)
			}
			return nil, &DrainError{Err: err, Name: name, Map: m}
		}
		out[name] = v
	}
	m.entries = make(map[string]*Storage)
	return out, nil
}

// MapRefs returns shared handles to every asset in m.
// On failure no handle is left alive.
func MapRefs[T any](m *Map) (map[string]*Ref[T], error) {
	if reflect.TypeFor[T]() != m.typ {
		return nil, fmt.Errorf("%w: map holds %v, not %v", ErrTypeMismatch, m.typ, reflect.TypeFor[T]())
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]*Ref[T], len(m.entries))
	for name, s := range m.entries {
		ref, err := Get[T](s)
		if err != nil {
			ReleaseRefs(out)
			return nil, fmt.Errorf("%w: %q", err, name)
		}
		out[name] = ref
	}
	return out, nil
}

// ReleaseRefs releases every handle in refs.
func ReleaseRefs[T any](refs map[string]*Ref[T]) {
	for _, ref := range refs {
		ref.Release()
	}
}

func sortedNames[V any](entries map[string]V) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
