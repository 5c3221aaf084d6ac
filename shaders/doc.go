// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaders is the WGSL asset kind.
//
// Files matching shaders/**/*.wgsl are validated and compiled to SPIR-V
// with naga while the bundle is built. At load time each record becomes a
// [Shader] holding a HAL shader module.
package shaders
