// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/internal/obj"
)

// Kind is the asset type name and directory of models.
const Kind = "models"

// VertexSize is the size in bytes of one vertex in a vertex buffer:
// position, texture coordinates, normal, tangent and bitangent, all
// float32.
const VertexSize = (3 + 2 + 3 + 3 + 3) * 4

// ErrInvalidMesh is returned for meshes whose indices point past their
// vertices.
var ErrInvalidMesh = errors.New("models: invalid mesh")

// Vertex is one model vertex. Tangent and bitangent are carried for
// shader compatibility and left zero by the OBJ reader.
type Vertex struct {
	_         struct{} `cbor:",toarray"`
	Position  [3]float32
	TexCoords [2]float32
	Normal    [3]float32
	Tangent   [3]float32
	Bitangent [3]float32
}

// MaterialData holds the encoded texture files of a material. A nil map
// is replaced by a 1x1 default at load time.
type MaterialData struct {
	Name           string
	DiffuseTexture []byte
	NormalTexture  []byte
}

// MeshData is a triangle list. Material indexes ModelData.Materials, or
// is -1 for none.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material int
}

// ModelData is the raw record of a model.
type ModelData struct {
	Name      string
	Materials []MaterialData
	Meshes    []MeshData
}

// FromDisk reads an OBJ file, its material libraries and the diffuse and
// normal maps they reference. Map paths are relative to the OBJ file.
func FromDisk(path string) (ModelData, error) {
	f, err := obj.Load(path)
	if err != nil {
		return ModelData{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, w := range f.Warnings {
		assets.Logger().Debug("models: obj warning", "model", name, "warning", w)
	}

	dir := filepath.Dir(path)
	md := ModelData{Name: name}
	for _, m := range f.Materials {
		diffuse, err := readMap(dir, m.DiffuseMap)
		if err != nil {
			return ModelData{}, fmt.Errorf("material %s diffuse map: %w", m.Name, err)
		}
		normal, err := readMap(dir, m.NormalMap)
		if err != nil {
			return ModelData{}, fmt.Errorf("material %s normal map: %w", m.Name, err)
		}
		md.Materials = append(md.Materials, MaterialData{
			Name:           m.Name,
			DiffuseTexture: diffuse,
			NormalTexture:  normal,
		})
	}

	for _, m := range f.Meshes {
		verts := make([]Vertex, len(m.Vertices))
		for i, v := range m.Vertices {
			verts[i] = Vertex{Position: v.Position, TexCoords: v.TexCoord, Normal: v.Normal}
		}
		md.Meshes = append(md.Meshes, MeshData{
			Name:     m.Name,
			Vertices: verts,
			Indices:  m.Indices,
			Material: m.Material,
		})
	}
	return md, nil
}

func readMap(dir, file string) ([]byte, error) {
	if file == "" {
		return nil, nil
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, filepath.FromSlash(file))
	}
	return os.ReadFile(file)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max [3]float32
}

// Empty reports whether the box contains no point.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Bounds returns the box enclosing every vertex of every mesh.
func (d ModelData) Bounds() Bounds {
	inf := math32.Inf(1)
	b := Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
	for _, m := range d.Meshes {
		for _, v := range m.Vertices {
			for i := range 3 {
				b.Min[i] = math32.Min(b.Min[i], v.Position[i])
				b.Max[i] = math32.Max(b.Max[i], v.Position[i])
			}
		}
	}
	return b
}

// vertexBytes lays vertices out as tightly packed little-endian float32.
func vertexBytes(verts []Vertex) []byte {
	buf := make([]byte, 0, len(verts)*VertexSize)
	put := func(fs ...float32) {
		for _, f := range fs {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	for i := range verts {
		v := &verts[i]
		put(v.Position[:]...)
		put(v.TexCoords[:]...)
		put(v.Normal[:]...)
		put(v.Tangent[:]...)
		put(v.Bitangent[:]...)
	}
	return buf
}

func indexBytes(indices []uint32) []byte {
	buf := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint32(buf, i)
	}
	return buf
}

// validate checks every index against the vertex count.
func (m MeshData) validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %s has %d indices, not a multiple of 3", ErrInvalidMesh, m.Name, len(m.Indices))
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Vertices) {
			return fmt.Errorf("%w: %s index %d >= %d vertices", ErrInvalidMesh, m.Name, i, len(m.Vertices))
		}
	}
	return nil
}
