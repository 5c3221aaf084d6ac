// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a generic LRU cache.
//
// The shaders package uses it to keep compiled SPIR-V keyed by a hash of
// the WGSL source, so identical shaders are compiled once per process.
//
//	c := cache.New[[32]byte, []uint32](64)
//	words, err := c.GetOrLoad(key, func() ([]uint32, error) {
//	    return compile(src)
//	})
package cache
