// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package models

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/textures"
)

// Default 1x1 maps for materials without a texture.
var (
	defaultDiffuse = solid(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	defaultNormal  = solid(color.RGBA{R: 128, G: 128, B: 255, A: 255})
)

func solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

// Material is a pair of GPU textures.
type Material struct {
	Name    string
	Diffuse *textures.Texture
	Normal  *textures.Texture
}

// Destroy releases both textures.
func (m *Material) Destroy(device hal.Device) {
	if m.Diffuse != nil {
		m.Diffuse.Destroy(device)
	}
	if m.Normal != nil {
		m.Normal.Destroy(device)
	}
}

// Mesh is an indexed triangle list on the GPU. Indices are uint32.
type Mesh struct {
	Name         string
	VertexBuffer hal.Buffer
	IndexBuffer  hal.Buffer
	NumVertices  uint32
	NumIndices   uint32
	Material     int
}

// Destroy releases the vertex and index buffers.
func (m *Mesh) Destroy(device hal.Device) {
	if m.VertexBuffer != nil {
		device.DestroyBuffer(m.VertexBuffer)
		m.VertexBuffer = nil
	}
	if m.IndexBuffer != nil {
		device.DestroyBuffer(m.IndexBuffer)
		m.IndexBuffer = nil
	}
}

// Model is a set of meshes and the materials they reference.
type Model struct {
	Name      string
	Meshes    []*Mesh
	Materials []*Material
	Bounds    Bounds
}

// Destroy releases every GPU resource of the model.
func (m *Model) Destroy(device hal.Device) {
	for _, mesh := range m.Meshes {
		mesh.Destroy(device)
	}
	for _, mat := range m.Materials {
		mat.Destroy(device)
	}
}

// ToAsset uploads materials and meshes. On failure everything created so
// far is released.
func (d ModelData) ToAsset(bc *assets.BuildContext) (*Model, error) {
	if err := bc.RequireDevice(); err != nil {
		return nil, err
	}
	model := &Model{Name: d.Name, Bounds: d.Bounds()}

	for _, md := range d.Materials {
		mat, err := buildMaterial(bc, d.Name, md)
		if err != nil {
			model.Destroy(bc.Device)
			return nil, err
		}
		model.Materials = append(model.Materials, mat)
	}

	for _, md := range d.Meshes {
		mesh, err := buildMesh(bc, d.Name, md, len(d.Materials))
		if err != nil {
			model.Destroy(bc.Device)
			return nil, err
		}
		model.Meshes = append(model.Meshes, mesh)
	}

	assets.Logger().Debug("models: model built", "name", d.Name,
		"meshes", len(model.Meshes), "materials", len(model.Materials))
	return model, nil
}

func buildMaterial(bc *assets.BuildContext, model string, md MaterialData) (*Material, error) {
	label := model + "/" + md.Name
	diffuse, err := uploadMap(bc, label+"_diffuse", md.DiffuseTexture, defaultDiffuse, textures.SRGB)
	if err != nil {
		return nil, err
	}
	normal, err := uploadMap(bc, label+"_normal", md.NormalTexture, defaultNormal, textures.Linear)
	if err != nil {
		diffuse.Destroy(bc.Device)
		return nil, err
	}
	return &Material{Name: md.Name, Diffuse: diffuse, Normal: normal}, nil
}

func uploadMap(bc *assets.BuildContext, label string, data []byte, fallback *image.RGBA, enc textures.Encoding) (*textures.Texture, error) {
	img := fallback
	if len(data) > 0 {
		var err error
		if img, err = textures.Decode(data); err != nil {
			return nil, fmt.Errorf("models: %s: %w", label, err)
		}
	}
	return textures.Upload(bc, label, img, enc)
}

func buildMesh(bc *assets.BuildContext, model string, md MeshData, materials int) (*Mesh, error) {
	if err := md.validate(); err != nil {
		return nil, err
	}
	if md.Material < -1 || md.Material >= materials {
		return nil, fmt.Errorf("%w: %s material %d of %d", ErrInvalidMesh, md.Name, md.Material, materials)
	}
	label := model + "/" + md.Name

	vb, err := createAndUploadBuffer(bc, label+"_vertices", vertexBytes(md.Vertices), gputypes.BufferUsageVertex)
	if err != nil {
		return nil, err
	}
	ib, err := createAndUploadBuffer(bc, label+"_indices", indexBytes(md.Indices), gputypes.BufferUsageIndex)
	if err != nil {
		bc.Device.DestroyBuffer(vb)
		return nil, err
	}
	return &Mesh{
		Name:         md.Name,
		VertexBuffer: vb,
		IndexBuffer:  ib,
		NumVertices:  uint32(len(md.Vertices)), //nolint:gosec // validated against uint32 indices
		NumIndices:   uint32(len(md.Indices)),  //nolint:gosec // same
		Material:     md.Material,
	}, nil
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func createAndUploadBuffer(bc *assets.BuildContext, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	// Zero-sized buffers are invalid; empty meshes still get a buffer.
	size := max(uint64(len(data)), 4)
	buf, err := bc.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("models: create %s: %w", label, err)
	}
	if len(data) > 0 {
		bc.Queue.WriteBuffer(buf, 0, data)
	}
	return buf, nil
}

// Mapper moves models through the asset pipeline.
type Mapper = assets.RawMapper[ModelData, *Model]

// NewMapper returns a mapper for models/**/*.obj.
func NewMapper() *Mapper {
	return assets.NewRawMapper[ModelData, *Model](Kind, FromDisk, ".obj")
}
