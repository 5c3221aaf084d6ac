// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fonts is the TrueType/OpenType asset kind.
//
// Records keep the font file bytes. At load time the font is parsed with
// go-text/typesetting, ready for shaping, and its naming table is read
// for the family and full names.
package fonts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/assets"
)

// Kind is the asset type name and directory of fonts.
const Kind = "fonts"

// ErrInvalidFont is returned for data that is not a parseable font.
var ErrInvalidFont = errors.New("fonts: invalid font")

// FontData is the raw record of a font: the font file.
type FontData struct {
	Name string
	Data []byte
}

// FromDisk reads a font file and checks that it parses.
func FromDisk(path string) (FontData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FontData{}, err
	}
	if _, err := opentype.Parse(data); err != nil {
		return FontData{}, fmt.Errorf("%w: %s: %v", ErrInvalidFont, path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return FontData{Name: name, Data: data}, nil
}

// Font is a parsed font.
type Font struct {
	Name       string
	Family     string
	FullName   string
	UnitsPerEm int
	NumGlyphs  int
	Data       []byte

	// Face is safe for concurrent use through its embedded *font.Font.
	Face *font.Face
}

// ToAsset parses the font. It does not use the GPU.
func (d FontData) ToAsset(*assets.BuildContext) (*Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(d.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFont, d.Name, err)
	}
	meta, err := opentype.Parse(d.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFont, d.Name, err)
	}

	f := &Font{
		Name:       d.Name,
		Family:     nameEntry(meta, sfnt.NameIDFamily),
		FullName:   nameEntry(meta, sfnt.NameIDFull),
		UnitsPerEm: int(meta.UnitsPerEm()),
		NumGlyphs:  meta.NumGlyphs(),
		Data:       d.Data,
		Face:       face,
	}
	assets.Logger().Debug("fonts: parsed", "name", d.Name, "family", f.Family, "glyphs", f.NumGlyphs)
	return f, nil
}

func nameEntry(f *opentype.Font, id sfnt.NameID) string {
	if s, err := f.Name(nil, id); err == nil {
		return s
	}
	return ""
}

// HasGlyph reports whether the font maps r to a glyph.
func (f *Font) HasGlyph(r rune) bool {
	if f.Face == nil {
		return false
	}
	_, ok := f.Face.NominalGlyph(r)
	return ok
}

// Destroy drops the parsed face. Fonts hold no GPU resources.
func (f *Font) Destroy(hal.Device) {
	f.Face = nil
}

// Mapper moves fonts through the asset pipeline.
type Mapper = assets.RawMapper[FontData, *Font]

// NewMapper returns a mapper for fonts/**/*.ttf and *.otf.
func NewMapper() *Mapper {
	return assets.NewRawMapper[FontData, *Font](Kind, FromDisk, ".ttf", ".otf")
}
