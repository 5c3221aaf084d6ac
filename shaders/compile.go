// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaders

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/assets/internal/cache"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic uint32 = 0x07230203

var (
	// ErrCompile is returned when WGSL source fails to compile.
	ErrCompile = errors.New("shaders: compile failed")

	// ErrInvalidSPIRV is returned for SPIR-V words without a valid header.
	ErrInvalidSPIRV = errors.New("shaders: invalid SPIR-V")
)

// compiled holds SPIR-V keyed by the hash of its WGSL source.
var compiled = cache.New[[sha256.Size]byte, []uint32](128)

// Compile validates WGSL source and translates it to SPIR-V words.
// Results are cached per process, keyed by source content.
func Compile(source string) ([]uint32, error) {
	key := sha256.Sum256([]byte(source))
	words, err := compiled.GetOrLoad(key, func() ([]uint32, error) {
		return compile(source)
	})
	if err != nil {
		return nil, err
	}
	return append([]uint32(nil), words...), nil
}

func compile(source string) ([]uint32, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of words", ErrInvalidSPIRV, len(spirv))
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	if err := Validate(words); err != nil {
		return nil, err
	}
	return words, nil
}

// Validate checks that words start with a SPIR-V header.
func Validate(words []uint32) error {
	// magic, version, generator, bound, schema
	if len(words) < 5 {
		return fmt.Errorf("%w: %d words is shorter than the header", ErrInvalidSPIRV, len(words))
	}
	if words[0] != SPIRVMagic {
		return fmt.Errorf("%w: magic %#08x", ErrInvalidSPIRV, words[0])
	}
	return nil
}
