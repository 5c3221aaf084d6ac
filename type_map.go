// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"
)

// TypeMap is the asset database: it maps asset type names such as
// "models" or "shaders" to a [Map] bound to the matching Go type.
//
// At most one Map exists per type name, and every insert under a type
// name must match the type that bucket was created with.
//
// TypeMap is safe for concurrent use.
type TypeMap struct {
	mu   sync.RWMutex
	maps map[string]*Map
}

// NewTypeMap creates an empty TypeMap.
func NewTypeMap() *TypeMap {
	return &TypeMap{maps: make(map[string]*Map)}
}

// Len returns the number of buckets.
func (tm *TypeMap) Len() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.maps)
}

// Types returns the bucket names in sorted order.
func (tm *TypeMap) Types() []string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return sortedNames(tm.maps)
}

// Bucket returns the map stored under ty.
func (tm *TypeMap) Bucket(ty string) (*Map, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	m, ok := tm.maps[ty]
	return m, ok
}

// InsertMap stores m under ty and returns the bucket it replaced, if any.
// A nil m removes the bucket.
func (tm *TypeMap) InsertMap(ty string, m *Map) *Map {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	prev := tm.maps[ty]
	if m == nil {
		delete(tm.maps, ty)
	} else {
		tm.maps[ty] = m
	}
	return prev
}

// Combine moves every bucket of other into tm. A bucket under a new type
// name is adopted as is; a bucket under an existing name extends the
// existing bucket.
//
// Buckets are processed in name order and each one is merged atomically.
// Combine stops at the first bucket whose type does not match and returns
// a [*CombineError] listing the buckets merged so far and holding every
// bucket that was not merged. other is left empty.
func (tm *TypeMap) Combine(other *TypeMap) error {
	if other == nil || other == tm {
		return nil
	}

	other.mu.Lock()
	buckets := other.maps
	other.maps = make(map[string]*Map)
	other.mu.Unlock()

	tm.mu.Lock()
	defer tm.mu.Unlock()

	names := sortedNames(buckets)
	merged := make([]string, 0, len(names))
	for i, ty := range names {
		m := buckets[ty]
		existing, ok := tm.maps[ty]
		if !ok {
			tm.maps[ty] = m
			merged = append(merged, ty)
			continue
		}
		if err := existing.Extend(m); err != nil {
			remaining := NewTypeMap()
			for _, rest := range names[i:] {
				remaining.maps[rest] = buckets[rest]
			}
			return &CombineError{Type: ty, Err: err, Merged: merged, Remaining: remaining}
		}
		merged = append(merged, ty)
	}
	return nil
}

// Destroy takes every asset out of tm and destroys the ones that implement
// [Destroyer]. Assets with live handles are skipped and stay in tm; buckets
// left empty are removed. It returns the number of assets taken.
//
// Destroy is meant for shutdown, after the game has released its handles.
func (tm *TypeMap) Destroy(device hal.Device) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	n := 0
	for ty, m := range tm.maps {
		m.mu.Lock()
		for name, s := range m.entries {
			v, err := s.takeAny()
			if err != nil {
				continue
			}
			delete(m.entries, name)
			n++
			if d, ok := v.(Destroyer); ok && device != nil {
				d.Destroy(device)
			}
		}
		empty := len(m.entries) == 0
		m.mu.Unlock()
		if empty {
			delete(tm.maps, ty)
		}
	}
	return n
}

// InsertAsset stores asset under ty and name, creating a bucket bound to T
// if ty is new. See [MapInsert] for the replacement semantics.
func InsertAsset[T any](tm *TypeMap, ty, name string, asset T) (old T, replaced bool, err error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	m, ok := tm.maps[ty]
	if !ok {
		tm.maps[ty] = MapFromAsset(name, asset)
		return old, false, nil
	}
	old, replaced, err = MapInsert(m, name, asset)
	if err != nil {
		return old, replaced, fmt.Errorf("bucket %q: %w", ty, err)
	}
	return old, replaced, nil
}

// GetAsset returns a shared handle to the asset ty/name.
func GetAsset[T any](tm *TypeMap, ty, name string) (*Ref[T], error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	m, ok := tm.maps[ty]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAssetTypeNotFound, ty)
	}
	return MapGet[T](m, name)
}

// TakeAsset removes the asset ty/name and returns it.
// If the asset cannot be taken it stays in place.
func TakeAsset[T any](tm *TypeMap, ty, name string) (T, error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	m, ok := tm.maps[ty]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrAssetTypeNotFound, ty)
	}
	return MapTake[T](m, name)
}

// GetAssetMap returns shared handles to every asset in bucket ty.
func GetAssetMap[T any](tm *TypeMap, ty string) (map[string]*Ref[T], error) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	m, ok := tm.maps[ty]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAssetTypeNotFound, ty)
	}
	return MapRefs[T](m)
}

// TakeAssetMap drains bucket ty and removes it.
// The bucket is removed only if every asset could be taken; otherwise it
// stays addressable under ty with all of its assets.
func TakeAssetMap[T any](tm *TypeMap, ty string) (map[string]T, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	m, ok := tm.maps[ty]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAssetTypeNotFound, ty)
	}
	out, err := MapDrain[T](m)
	if err != nil {
		return nil, err
	}
	delete(tm.maps, ty)
	return out, nil
}
