// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Storage holds a single asset of a type fixed at construction.
//
// Shared access is handed out as counted [Ref] handles by [Get]. Unique
// extraction with [Take] succeeds only when no handle is alive; otherwise
// the cell is left exactly as it was.
//
// Storage is safe for concurrent use.
type Storage struct {
	mu    sync.Mutex
	typ   reflect.Type
	value any
	refs  int
	taken bool
}

// NewStorage wraps v in a new storage cell bound to type T.
func NewStorage[T any](v T) *Storage {
	return &Storage{
		typ:   reflect.TypeFor[T](),
		value: v,
	}
}

// Type returns the type the cell was created with.
func (s *Storage) Type() reflect.Type {
	return s.typ
}

// Refs returns the number of live shared handles.
func (s *Storage) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

// Taken reports whether the value has been extracted with [Take].
func (s *Storage) Taken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taken
}

func (s *Storage) release() {
	s.mu.Lock()
	if s.refs > 0 {
		s.refs--
	}
	s.mu.Unlock()
}

// Get returns a new shared handle to the value in s.
// It fails with [ErrTypeMismatch] if s does not hold a T.
func Get[T any](s *Storage) (*Ref[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken {
		return nil, ErrTaken
	}
	if s.typ != reflect.TypeFor[T]() {
		return nil, ErrTypeMismatch
	}
	v, _ := s.value.(T)
	s.refs++
	return &Ref[T]{s: s, value: v}, nil
}

// Take extracts the value from s, leaving the cell empty.
//
// Take is all-or-nothing: on [ErrTypeMismatch] or [ErrInvalidTake] the
// cell keeps its value and remains fully usable.
func Take[T any](s *Storage) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken {
		return zero, ErrTaken
	}
	if s.typ != reflect.TypeFor[T]() {
		return zero, ErrTypeMismatch
	}
	if s.refs > 0 {
		return zero, ErrInvalidTake
	}
	v, _ := s.value.(T)
	s.value = nil
	s.taken = true
	return v, nil
}

// takeAny is Take without the type check.
func (s *Storage) takeAny() (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken {
		return nil, ErrTaken
	}
	if s.refs > 0 {
		return nil, ErrInvalidTake
	}
	v := s.value
	s.value = nil
	s.taken = true
	return v, nil
}

// Ref is a shared handle to a stored asset.
//
// A Ref keeps its storage from being taken until Release is called.
// Release is idempotent and safe for concurrent use.
type Ref[T any] struct {
	s        *Storage
	value    T
	released atomic.Bool
}

// Value returns the referenced asset.
func (r *Ref[T]) Value() T {
	return r.value
}

// Release drops the handle. Calling Release more than once has no effect.
func (r *Ref[T]) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.s.release()
	}
}
