// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package assets

import (
	"math"

	"github.com/fxamacker/cbor/v2"
)

// Codec encodes and decodes raw asset records.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v, which must be a pointer.
	Unmarshal(data []byte, v any) error
	// Name identifies the codec in logs and tool output.
	Name() string
}

// codecSetter is implemented by mappers that accept the pipeline codec.
type codecSetter interface {
	SetCodec(Codec)
}

// propagateCodec hands c to m if m accepts one.
func propagateCodec(m Mapper, c Codec) {
	if cs, ok := m.(codecSetter); ok {
		cs.SetCodec(c)
	}
}

// CBOR is the default record codec. It uses the core deterministic
// encoding, so equal records always produce equal bytes.
var CBOR Codec = newCBORCodec()

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCBORCodec() *cborCodec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("assets: cbor encode options: " + err.Error())
	}
	// Vertex arrays of large models exceed the default element limits.
	dec, err := cbor.DecOptions{
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
	}.DecMode()
	if err != nil {
		panic("assets: cbor decode options: " + err.Error())
	}
	return &cborCodec{enc: enc, dec: dec}
}

func (c *cborCodec) Marshal(v any) ([]byte, error)      { return c.enc.Marshal(v) }
func (c *cborCodec) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }
func (c *cborCodec) Name() string                       { return "cbor" }
