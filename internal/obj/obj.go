// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package obj reads Wavefront OBJ geometry and its MTL material libraries.
//
// Only what the model asset kind needs is supported: positions, texture
// coordinates, normals, polygonal faces (fan triangulated), objects and
// groups, usemtl, and the diffuse and normal map statements of MTL files.
// Every other statement is skipped and reported in File.Warnings.
//
// Meshes use a single index per vertex: each distinct v/vt/vn triple of a
// mesh becomes one vertex.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("obj: syntax error")

// ParseError reports a malformed line.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("obj: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("obj: %s:%d: %s", e.File, e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

// Vertex is one single-indexed mesh vertex. Missing texture coordinates
// and normals are zero.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// Mesh is a triangle list. Material indexes File.Materials, or is -1.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material int
}

// Material holds the MTL statements used by models. Map paths are as
// written in the file, relative to the MTL file's directory.
type Material struct {
	Name       string
	Diffuse    [3]float32
	DiffuseMap string
	NormalMap  string
}

// File is a decoded OBJ file.
type File struct {
	Meshes       []Mesh
	Materials    []Material
	MaterialLibs []string
	Warnings     []string

	meshMaterials []string // usemtl name per mesh
}

// Load reads the OBJ file at path together with the material libraries
// it references. A missing library is a warning, not an error.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = filepath.Base(path)
		}
		return nil, err
	}

	dir := filepath.Dir(path)
	var mats []Material
	for _, lib := range file.MaterialLibs {
		libPath := filepath.Join(dir, lib)
		m, err := loadMaterials(libPath)
		if errors.Is(err, os.ErrNotExist) {
			file.Warnings = append(file.Warnings, "material library not found: "+lib)
			continue
		}
		if err != nil {
			return nil, err
		}
		mats = append(mats, m...)
	}
	file.ResolveMaterials(mats)
	return file, nil
}

func loadMaterials(path string) ([]Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mats, err := ParseMaterials(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = filepath.Base(path)
		}
		return nil, err
	}
	return mats, nil
}

// ResolveMaterials sets Materials to mats and points every mesh at its
// material by name. Meshes whose material is not in mats get -1 and a
// warning.
func (f *File) ResolveMaterials(mats []Material) {
	byName := make(map[string]int, len(mats))
	for i, m := range mats {
		if _, dup := byName[m.Name]; dup {
			f.Warnings = append(f.Warnings, "material redefined: "+m.Name)
		}
		byName[m.Name] = i
	}
	f.Materials = mats

	for i := range f.Meshes {
		var name string
		if i < len(f.meshMaterials) {
			name = f.meshMaterials[i]
		}
		if name == "" {
			f.Meshes[i].Material = -1
			continue
		}
		idx, ok := byName[name]
		if !ok {
			f.Warnings = append(f.Warnings, "material not defined: "+name)
			idx = -1
		}
		f.Meshes[i].Material = idx
	}
}

// lines calls fn for every non-empty, non-comment line of r.
func lines(r io.Reader, fn func(n int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := fn(n, fields); err != nil {
			return err
		}
	}
	return sc.Err()
}

func parseFloats(dst []float32, fields []string) error {
	for i := range dst {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return err
		}
		dst[i] = float32(v)
	}
	return nil
}
