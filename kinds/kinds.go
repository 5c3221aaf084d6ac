// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package kinds wires the built-in asset kinds into the pipeline.
//
// A game that uses every built-in kind needs only:
//
//	s := kinds.NewSerializer(assets.WithAssetDirectory("./assets"))
//	if _, err := s.Serialize(ctx); err != nil { ... }
//
// and at startup:
//
//	tm, err := kinds.NewDeserializer().DeserializeFile(ctx, "data.bin", bc)
package kinds

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/assets"
	"github.com/gogpu/assets/fonts"
	"github.com/gogpu/assets/models"
	"github.com/gogpu/assets/shaders"
	"github.com/gogpu/assets/texts"
	"github.com/gogpu/assets/textures"
)

// Names lists the built-in kinds in sorted order.
var Names = []string{fonts.Kind, models.Kind, shaders.Kind, texts.Kind, textures.Kind}

// New returns a fresh mapper for the built-in kind name.
func New(name string) (assets.Mapper, error) {
	switch name {
	case fonts.Kind:
		return fonts.NewMapper(), nil
	case models.Kind:
		return models.NewMapper(), nil
	case shaders.Kind:
		return shaders.NewMapper(), nil
	case texts.Kind:
		return texts.NewMapper(), nil
	case textures.Kind:
		return textures.NewMapper(), nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q (known: %s)", assets.ErrConfig, name, strings.Join(Names, ", "))
}

// Select returns fresh mappers for the given kinds. Duplicates are
// ignored; an unknown name fails with [assets.ErrConfig].
func Select(names ...string) (map[string]assets.Mapper, error) {
	out := make(map[string]assets.Mapper, len(names))
	for _, name := range names {
		if _, ok := out[name]; ok {
			continue
		}
		m, err := New(name)
		if err != nil {
			return nil, err
		}
		out[name] = m
	}
	return out, nil
}

// Defaults returns fresh mappers for every built-in kind.
func Defaults() map[string]assets.Mapper {
	out := make(map[string]assets.Mapper, len(Names))
	for _, name := range Names {
		m, _ := New(name)
		out[name] = m
	}
	return out
}

// Known reports whether name is a built-in kind.
func Known(name string) bool {
	return slices.Contains(Names, name)
}

// NewSerializer returns a serializer with every built-in kind registered.
// opts are applied after the defaults, so they may replace a mapper.
func NewSerializer(opts ...assets.Option) *assets.Serializer {
	return assets.NewSerializer(append([]assets.Option{assets.WithMappers(Defaults())}, opts...)...)
}

// NewDeserializer returns a deserializer with every built-in kind
// registered.
func NewDeserializer(opts ...assets.Option) *assets.Deserializer {
	return assets.NewDeserializer(append([]assets.Option{assets.WithMappers(Defaults())}, opts...)...)
}
