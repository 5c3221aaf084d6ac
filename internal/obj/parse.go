// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package obj

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// corner is a face corner: zero-based v, vt and vn indices, -1 if absent.
type corner struct {
	v, vt, vn int
}

type meshBuilder struct {
	mesh     Mesh
	material string
	lookup   map[corner]uint32
}

type decoder struct {
	file *File

	positions [][3]float32
	texcoords [][2]float32
	normals   [][3]float32

	name     string
	material string
	current  *meshBuilder
	builders []*meshBuilder
}

// Parse decodes OBJ geometry from r. Material references are recorded by
// name; call [File.ResolveMaterials] to bind them, or use [Load].
func Parse(r io.Reader) (*File, error) {
	d := &decoder{file: &File{}, name: "default"}
	err := lines(r, func(n int, fields []string) error {
		if err := d.line(fields); err != nil {
			return &ParseError{Line: n, Msg: err.Error()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f := d.file
	for _, b := range d.builders {
		if len(b.mesh.Indices) == 0 {
			continue
		}
		b.mesh.Material = -1
		f.Meshes = append(f.Meshes, b.mesh)
		f.meshMaterials = append(f.meshMaterials, b.material)
	}
	return f, nil
}

func (d *decoder) line(fields []string) error {
	args := fields[1:]
	switch fields[0] {
	case "v":
		var p [3]float32
		if len(args) < 3 {
			return fmt.Errorf("v needs 3 coordinates, got %d", len(args))
		}
		if err := parseFloats(p[:], args); err != nil {
			return err
		}
		d.positions = append(d.positions, p)
	case "vt":
		var t [2]float32
		if len(args) < 1 {
			return fmt.Errorf("vt needs a coordinate")
		}
		if err := parseFloats(t[:min(2, len(args))], args); err != nil {
			return err
		}
		d.texcoords = append(d.texcoords, t)
	case "vn":
		var nrm [3]float32
		if len(args) < 3 {
			return fmt.Errorf("vn needs 3 coordinates, got %d", len(args))
		}
		if err := parseFloats(nrm[:], args); err != nil {
			return err
		}
		d.normals = append(d.normals, nrm)
	case "f":
		return d.face(args)
	case "o", "g":
		name := "default"
		if len(args) > 0 {
			name = strings.Join(args, " ")
		}
		d.name = name
		d.current = nil
	case "usemtl":
		if len(args) < 1 {
			return fmt.Errorf("usemtl without a name")
		}
		d.material = args[0]
		if d.current != nil && d.current.material != d.material {
			d.current = nil
		}
	case "mtllib":
		if len(args) < 1 {
			return fmt.Errorf("mtllib without a file")
		}
		d.file.MaterialLibs = append(d.file.MaterialLibs, args...)
	case "s", "l", "p":
		// smoothing groups, lines and points carry nothing for triangle meshes
	default:
		d.file.Warnings = append(d.file.Warnings, "statement not supported: "+fields[0])
	}
	return nil
}

func (d *decoder) builder() *meshBuilder {
	if d.current == nil {
		d.current = &meshBuilder{
			mesh:     Mesh{Name: d.name},
			material: d.material,
			lookup:   make(map[corner]uint32),
		}
		d.builders = append(d.builders, d.current)
	}
	return d.current
}

func (d *decoder) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
	}
	b := d.builder()

	idx := make([]uint32, len(args))
	for i, arg := range args {
		c, err := d.corner(arg)
		if err != nil {
			return err
		}
		idx[i] = b.vertex(c, d)
	}
	// Fan triangulation around the first corner.
	for i := 1; i+1 < len(idx); i++ {
		b.mesh.Indices = append(b.mesh.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

func (b *meshBuilder) vertex(c corner, d *decoder) uint32 {
	if i, ok := b.lookup[c]; ok {
		return i
	}
	v := Vertex{Position: d.positions[c.v]}
	if c.vt >= 0 {
		v.TexCoord = d.texcoords[c.vt]
	}
	if c.vn >= 0 {
		v.Normal = d.normals[c.vn]
	}
	i := uint32(len(b.mesh.Vertices)) //nolint:gosec // vertex count fits uint32
	b.mesh.Vertices = append(b.mesh.Vertices, v)
	b.lookup[c] = i
	return i
}

// corner parses v, v/vt, v//vn or v/vt/vn.
func (d *decoder) corner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("bad face vertex %q", s)
	}
	c := corner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolve(parts[0], len(d.positions)); err != nil {
		return c, fmt.Errorf("face vertex %q: %w", s, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolve(parts[1], len(d.texcoords)); err != nil {
			return c, fmt.Errorf("face texcoord %q: %w", s, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolve(parts[2], len(d.normals)); err != nil {
			return c, fmt.Errorf("face normal %q: %w", s, err)
		}
	}
	return c, nil
}

// resolve turns a one-based or negative (relative) OBJ index into a
// zero-based index below n.
func resolve(s string, n int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	var i int
	switch {
	case v > 0:
		i = v - 1
	case v < 0:
		i = n + v
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %d out of range (%d defined)", v, n)
	}
	return i, nil
}
