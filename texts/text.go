// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package texts is the plain text asset kind, used for UI strings and
// other prose shipped with a game.
package texts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/wgpu/hal"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/assets"
)

// Kind is the asset type name and directory of texts.
const Kind = "texts"

// ErrInvalidUTF8 is returned for text files that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("texts: invalid UTF-8")

// TextData is the raw record of a text file, normalized to NFC.
type TextData struct {
	Name string
	Text string
}

// FromDisk reads a UTF-8 text file. A leading byte order mark is dropped
// and the content is normalized to NFC.
func FromDisk(path string) (TextData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TextData{}, err
	}
	if !utf8.Valid(data) {
		return TextData{}, fmt.Errorf("%w: %s", ErrInvalidUTF8, path)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return TextData{Name: name, Text: norm.NFC.String(text)}, nil
}

// Block is a text split into lines.
type Block struct {
	Name  string
	Text  string
	Lines []string
}

// ToAsset splits the text into lines. CRLF line endings are accepted.
func (d TextData) ToAsset(*assets.BuildContext) (*Block, error) {
	if !utf8.ValidString(d.Text) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUTF8, d.Name)
	}
	text := norm.NFC.String(d.Text)
	return &Block{Name: d.Name, Text: text, Lines: splitLines(text)}, nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// RuneCount returns the number of runes in the block.
func (b *Block) RuneCount() int {
	return utf8.RuneCountInString(b.Text)
}

// Destroy is a no-op; text blocks hold no GPU resources.
func (b *Block) Destroy(hal.Device) {}

// Mapper moves texts through the asset pipeline.
type Mapper = assets.RawMapper[TextData, *Block]

// NewMapper returns a mapper for texts/**/*.txt.
func NewMapper() *Mapper {
	return assets.NewRawMapper[TextData, *Block](Kind, FromDisk, ".txt")
}
