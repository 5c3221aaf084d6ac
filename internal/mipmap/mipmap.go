// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mipmap builds mipmap chains for texture upload.
//
// Each level is half the size of the previous one, down to 1x1. Levels are
// produced with a 2x2 box filter. Color data is averaged in linear light so
// that downscaled sRGB textures keep their brightness; data textures such
// as normal maps are averaged as stored.
package mipmap

import (
	"image"
	"math/bits"
)

// Encoding describes how texel values are stored.
type Encoding uint8

const (
	// SRGB marks gamma-encoded color, such as albedo maps.
	SRGB Encoding = iota
	// Linear marks raw data, such as normal or roughness maps.
	Linear
)

// Levels returns the length of the full chain for a w x h image.
func Levels(w, h int) int {
	m := max(w, h)
	if m <= 0 {
		return 0
	}
	return bits.Len(uint(m))
}

// Chain returns src followed by every smaller level. src is level 0 and is
// not copied. An empty image yields nil.
func Chain(src *image.RGBA, enc Encoding) []*image.RGBA {
	if src == nil || src.Bounds().Empty() {
		return nil
	}
	n := Levels(src.Bounds().Dx(), src.Bounds().Dy())
	levels := make([]*image.RGBA, n)
	levels[0] = src
	for i := 1; i < n; i++ {
		levels[i] = Downsample(levels[i-1], enc)
	}
	return levels
}

// Downsample returns a half-size copy of src. Odd edges repeat their last
// row or column.
func Downsample(src *image.RGBA, enc Encoding) *image.RGBA {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	dw, dh := max(1, sw/2), max(1, sh/2)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))

	for dy := range dh {
		sy0 := b.Min.Y + min(dy*2, sh-1)
		sy1 := b.Min.Y + min(dy*2+1, sh-1)
		for dx := range dw {
			sx0 := b.Min.X + min(dx*2, sw-1)
			sx1 := b.Min.X + min(dx*2+1, sw-1)
			p := [4]int{
				src.PixOffset(sx0, sy0),
				src.PixOffset(sx1, sy0),
				src.PixOffset(sx0, sy1),
				src.PixOffset(sx1, sy1),
			}
			o := dst.PixOffset(dx, dy)
			for c := range 4 {
				if enc == SRGB && c < 3 {
					var sum float32
					for _, off := range p {
						sum += toLinear[src.Pix[off+c]]
					}
					dst.Pix[o+c] = linearToSRGB(sum / 4)
					continue
				}
				var sum int
				for _, off := range p {
					sum += int(src.Pix[off+c])
				}
				dst.Pix[o+c] = uint8((sum + 2) / 4) //nolint:gosec // average of bytes
			}
		}
	}
	return dst
}
