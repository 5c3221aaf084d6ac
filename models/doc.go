// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package models is the Wavefront OBJ asset kind.
//
// A record holds single-indexed triangle meshes and, for every material,
// the bytes of its diffuse and normal maps as found next to the OBJ file.
// At load time meshes become vertex and index buffers and materials become
// two RGBA8 textures each.
//
// Vertex buffers use [VertexSize]-byte vertices laid out as position[3],
// tex_coords[2], normal[3], tangent[3], bitangent[3].
package models
