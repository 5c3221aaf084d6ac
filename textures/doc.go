// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package textures is the image asset kind.
//
// Records keep the encoded file bytes (PNG, JPEG, BMP or WebP). At load
// time the image is decoded, converted to RGBA and uploaded as an RGBA8
// texture with a matching 2D view. Every mip level down to 1x1 is generated
// on the CPU and uploaded with it.
package textures
