// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package obj

import (
	"fmt"
	"io"
)

// ParseMaterials decodes an MTL material library.
func ParseMaterials(r io.Reader) ([]Material, error) {
	var mats []Material
	var cur *Material
	err := lines(r, func(n int, fields []string) error {
		args := fields[1:]
		fail := func(format string, a ...any) error {
			return &ParseError{Line: n, Msg: fmt.Sprintf(format, a...)}
		}

		if fields[0] == "newmtl" {
			if len(args) < 1 {
				return fail("newmtl without a name")
			}
			mats = append(mats, Material{Name: args[0], Diffuse: [3]float32{1, 1, 1}})
			cur = &mats[len(mats)-1]
			return nil
		}
		if cur == nil {
			return fail("%s before newmtl", fields[0])
		}

		switch fields[0] {
		case "Kd":
			if len(args) < 3 {
				return fail("Kd needs 3 components")
			}
			if err := parseFloats(cur.Diffuse[:], args); err != nil {
				return fail("Kd: %v", err)
			}
		case "map_Kd":
			path, err := mapPath(args)
			if err != nil {
				return fail("map_Kd: %v", err)
			}
			cur.DiffuseMap = path
		case "map_Bump", "map_bump", "bump", "norm":
			path, err := mapPath(args)
			if err != nil {
				return fail("%s: %v", fields[0], err)
			}
			cur.NormalMap = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mats, nil
}

// mapPath returns the file of a texture map statement, skipping options
// such as "-bm 1.0" or "-clamp on". The file name is the last argument.
func mapPath(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing file name")
	}
	return args[len(args)-1], nil
}
