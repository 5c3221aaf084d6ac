// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mipmap

import "math"

// toLinear maps an sRGB byte to linear light in [0, 1].
var toLinear [256]float32

// toSRGB maps linear light quantized to 12 bits back to an sRGB byte.
var toSRGB [4096]uint8

func init() {
	for i := range toLinear {
		s := float64(i) / 255
		if s <= 0.04045 {
			toLinear[i] = float32(s / 12.92)
		} else {
			toLinear[i] = float32(math.Pow((s+0.055)/1.055, 2.4))
		}
	}
	for i := range toSRGB {
		l := float64(i) / 4095
		var s float64
		if l <= 0.0031308 {
			s = l * 12.92
		} else {
			s = 1.055*math.Pow(l, 1/2.4) - 0.055
		}
		toSRGB[i] = uint8(min(255, max(0, int(s*255+0.5)))) //nolint:gosec // clamped
	}
}

func linearToSRGB(l float32) uint8 {
	l = min(1, max(0, l))
	return toSRGB[int(l*4095+0.5)]
}
