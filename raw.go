// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gogpu/assets/internal/parallel"
)

// RawAsset is a GPU-independent asset record that can be turned into its
// runtime form A.
type RawAsset[A any] interface {
	ToAsset(bc *BuildContext) (A, error)
}

// FromDisk reads one raw record from a file.
type FromDisk[R any] func(path string) (R, error)

// Mapper moves one asset kind through the pipeline. Implementations hold
// the raw records between stages; converting them into an asset map or a
// binary map consumes them.
type Mapper interface {
	// Load reads every file of the kind found under assetDir.
	Load(assetDir string) error
	// ToAssetMap builds runtime assets from the held records.
	ToAssetMap(bc *BuildContext) (*Map, error)
	// LoadBinMap decodes records from their binary form.
	LoadBinMap(bm BinMap) error
	// ToBinMap encodes the held records.
	ToBinMap() (BinMap, error)
}

// LoadDir reads every file below root whose extension is one of exts and
// returns the records keyed by file stem. The search is recursive and the
// extension match is case-sensitive. A missing root yields no records.
//
// Two files with the same stem fail with [ErrDuplicateName]. Files are read
// concurrently on the shared worker pool.
func LoadDir[R any](ctx context.Context, root string, fromDisk FromDisk[R], exts ...string) (map[string]R, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		Logger().Debug("assets: no directory for kind", "dir", root)
		return map[string]R{}, nil
	}

	names, paths, err := findFiles(root, exts)
	if err != nil {
		return nil, err
	}

	records := make([]R, len(paths))
	err = parallel.Shared().Run(ctx, len(paths), func(_ context.Context, i int) error {
		r, err := fromDisk(paths[i])
		if err != nil {
			return fmt.Errorf("assets: load %s: %w", paths[i], err)
		}
		records[i] = r
		Logger().Debug("assets: loaded file", "name", names[i], "path", paths[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]R, len(paths))
	for i, name := range names {
		out[name] = records[i]
	}
	return out, nil
}

func findFiles(root string, exts []string) (names, paths []string, err error) {
	seen := make(map[string]string)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if !slices.Contains(exts, ext) {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), ext)
		if !utf8.ValidString(name) {
			return fmt.Errorf("%w: asset name %q from %s is not valid UTF-8", ErrConfig, name, path)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q from %s and %s", ErrDuplicateName, name, prev, path)
		}
		seen[name] = path
		names = append(names, name)
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return names, paths, nil
}

// BuildAssetMap converts records into a map bound to A. Records are built
// in name order. If one fails, every asset built so far that implements
// [Destroyer] is destroyed and the error is returned.
func BuildAssetMap[R RawAsset[A], A any](bc *BuildContext, records map[string]R) (*Map, error) {
	built := make(map[string]A, len(records))
	for _, name := range sortedNames(records) {
		a, err := records[name].ToAsset(bc)
		if err != nil {
			destroyAll(bc, built)
			return nil, fmt.Errorf("assets: build %q: %w", name, err)
		}
		built[name] = a
	}
	return MapFrom(built), nil
}

func destroyAll[A any](bc *BuildContext, built map[string]A) {
	if bc == nil || bc.Device == nil {
		return
	}
	for _, a := range built {
		if d, ok := any(a).(Destroyer); ok {
			d.Destroy(bc.Device)
		}
	}
}

// EncodeBinMap encodes every record with codec.
func EncodeBinMap[R any](codec Codec, records map[string]R) (BinMap, error) {
	bm := make(BinMap, len(records))
	for name, r := range records {
		data, err := codec.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("assets: encode %q: %w", name, err)
		}
		bm[name] = data
	}
	return bm, nil
}

// DecodeBinMap decodes every record of bm with codec.
func DecodeBinMap[R any](codec Codec, bm BinMap) (map[string]R, error) {
	records := make(map[string]R, len(bm))
	for name, data := range bm {
		var r R
		if err := codec.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", ErrBinaryDecode, name, err)
		}
		records[name] = r
	}
	return records, nil
}

// RawMapper is a [Mapper] for any raw record type R whose runtime form is
// A. Kind packages configure one with a directory, a file reader and the
// extensions to match; all pipeline stages are shared.
//
// RawMapper is safe for concurrent use.
type RawMapper[R RawAsset[A], A any] struct {
	dir      string
	exts     []string
	fromDisk FromDisk[R]

	mu      sync.Mutex
	codec   Codec
	records map[string]R
}

// NewRawMapper creates a mapper reading files with the given extensions
// from the subdirectory dir of the asset directory.
func NewRawMapper[R RawAsset[A], A any](dir string, fromDisk FromDisk[R], exts ...string) *RawMapper[R, A] {
	return &RawMapper[R, A]{
		dir:      dir,
		exts:     exts,
		fromDisk: fromDisk,
		codec:    CBOR,
		records:  make(map[string]R),
	}
}

// SetCodec sets the record codec.
func (m *RawMapper[R, A]) SetCodec(c Codec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codec = c
}

// Dir returns the subdirectory the mapper reads from.
func (m *RawMapper[R, A]) Dir() string { return m.dir }

// Len returns the number of held records.
func (m *RawMapper[R, A]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// Insert adds a record under name, replacing any record with that name.
func (m *RawMapper[R, A]) Insert(name string, r R) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = r
}

// Records returns a copy of the held records.
func (m *RawMapper[R, A]) Records() map[string]R {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]R, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out
}

// Load reads assetDir/<dir>. A name already held by the mapper fails with
// [ErrDuplicateName] and leaves the held records unchanged.
func (m *RawMapper[R, A]) Load(assetDir string) error {
	loaded, err := LoadDir(context.Background(), filepath.Join(assetDir, m.dir), m.fromDisk, m.exts...)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for name := range loaded {
		if _, ok := m.records[name]; ok {
			return fmt.Errorf("%w: %q already loaded", ErrDuplicateName, name)
		}
	}
	for name, r := range loaded {
		m.records[name] = r
	}
	return nil
}

// ToAssetMap builds the held records and clears them, whether or not the
// build succeeds.
func (m *RawMapper[R, A]) ToAssetMap(bc *BuildContext) (*Map, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.records
	m.records = make(map[string]R)
	return BuildAssetMap[R, A](bc, records)
}

// LoadBinMap decodes bm and replaces the held records with the result.
// On a decode error the mapper is left empty.
func (m *RawMapper[R, A]) LoadBinMap(bm BinMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := DecodeBinMap[R](m.codec, bm)
	if err != nil {
		m.records = make(map[string]R)
		return err
	}
	m.records = records
	return nil
}

// ToBinMap encodes the held records and clears them, whether or not the
// encoding succeeds.
func (m *RawMapper[R, A]) ToBinMap() (BinMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.records
	m.records = make(map[string]R)
	return EncodeBinMap(m.codec, records)
}
