// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/assets"
)

// Kind is the asset type name and directory of shaders.
const Kind = "shaders"

// ShaderData is the raw record of a WGSL shader. SPIRV is filled in when
// the file is read, so bundles carry compiled code and loading a bundle
// does not depend on the compiler.
type ShaderData struct {
	Name   string
	Source string
	SPIRV  []uint32
}

// FromDisk reads and compiles a WGSL file.
func FromDisk(path string) (ShaderData, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return ShaderData{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	words, err := Compile(string(src))
	if err != nil {
		return ShaderData{}, fmt.Errorf("%s: %w", name, err)
	}
	return ShaderData{Name: name, Source: string(src), SPIRV: words}, nil
}

// Shader is a shader module ready for pipeline creation.
type Shader struct {
	Name   string
	Source string
	SPIRV  []uint32
	Module hal.ShaderModule
}

// ToAsset creates the shader module on the build context device.
// Records without SPIR-V are compiled first.
func (d ShaderData) ToAsset(bc *assets.BuildContext) (*Shader, error) {
	if err := bc.RequireDevice(); err != nil {
		return nil, err
	}
	words := d.SPIRV
	if len(words) == 0 {
		var err error
		if words, err = Compile(d.Source); err != nil {
			return nil, err
		}
	}
	if err := Validate(words); err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	module, err := bc.Device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "shader:" + d.Name,
		Source: hal.ShaderSource{
			SPIRV: words,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("shaders: create module %s: %w", d.Name, err)
	}
	assets.Logger().Debug("shaders: module created", "name", d.Name, "words", len(words))

	return &Shader{Name: d.Name, Source: d.Source, SPIRV: words, Module: module}, nil
}

// Destroy releases the shader module.
func (s *Shader) Destroy(device hal.Device) {
	if s.Module != nil {
		device.DestroyShaderModule(s.Module)
		s.Module = nil
	}
}

// Mapper moves shaders through the asset pipeline.
type Mapper = assets.RawMapper[ShaderData, *Shader]

// NewMapper returns a mapper for shaders/**/*.wgsl.
func NewMapper() *Mapper {
	return assets.NewRawMapper[ShaderData, *Shader](Kind, FromDisk, ".wgsl")
}
